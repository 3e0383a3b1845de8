package domain

// DefaultStudentImage is the avatar assigned when a student is created without one.
const DefaultStudentImage = "https://i.imgur.com/r8bo8u7.png"

// Language is a spoken language listed on a student profile.
type Language string

// Supported languages.
const (
	LanguageEnglish    Language = "English"
	LanguageSpanish    Language = "Spanish"
	LanguageFrench     Language = "French"
	LanguageGerman     Language = "German"
	LanguagePortuguese Language = "Portuguese"
	LanguageDutch      Language = "Dutch"
	LanguageOther      Language = "Other"
)

// IsValid reports whether l is one of the supported languages.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman,
		LanguagePortuguese, LanguageDutch, LanguageOther:
		return true
	}
	return false
}

// Student is a person record, optionally enrolled in one Cohort.
//
// Cohort is a weak reference: it is never checked on write and may point at a
// cohort that no longer exists.
type Student struct {
	ID          ID         `json:"id"          bson:"_id"`
	FirstName   string     `json:"firstName"   bson:"firstName"   validate:"required"`
	LastName    string     `json:"lastName"    bson:"lastName"    validate:"required"`
	Email       string     `json:"email"       bson:"email"       validate:"required,email"`
	Phone       string     `json:"phone"       bson:"phone"`
	LinkedinURL string     `json:"linkedinUrl" bson:"linkedinUrl" validate:"omitempty,url"`
	Languages   []Language `json:"languages"   bson:"languages"   validate:"dive,enum"`
	Program     Program    `json:"program"     bson:"program"     validate:"omitempty,enum"`
	Background  string     `json:"background"  bson:"background"`
	Image       string     `json:"image"       bson:"image"       validate:"omitempty,url"`
	Cohort      *ID        `json:"cohort"      bson:"cohort,omitempty"`
	Projects    []string   `json:"projects"    bson:"projects"`
}

var _ Entity = (*Student)(nil)

// GetID implements Entity.
func (s *Student) GetID() ID { return s.ID }

// SetID implements Entity.
func (s *Student) SetID(id ID) { s.ID = id }

// Validate checks if the Student has valid data.
func (s *Student) Validate() error {
	if s.ID.IsZero() {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if s.Cohort != nil && s.Cohort.IsZero() {
		return NewValidationError("cohort", "must be a valid id", ErrInvalidID)
	}
	return validateStruct(s)
}

// StudentDetail is the read model of a Student with its cohort resolved.
// Cohort is nil when the student has no cohort or the referenced cohort is gone.
type StudentDetail struct {
	*Student
	Cohort *Cohort `json:"cohort"`
}

// NewStudentDetail pairs a student with its resolved cohort.
func NewStudentDetail(s *Student, cohort *Cohort) *StudentDetail {
	return &StudentDetail{Student: s, Cohort: cohort}
}
