package api

import (
	"time"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
)

// CohortRequest is the fixed field set accepted when creating or replacing a cohort.
// Omitted fields take their defaults.
type CohortRequest struct {
	InProgress     bool           `json:"inProgress"`
	CohortSlug     string         `json:"cohortSlug"`
	CohortName     string         `json:"cohortName"`
	Program        domain.Program `json:"program"`
	Campus         domain.Campus  `json:"campus"`
	StartDate      *time.Time     `json:"startDate"`
	EndDate        *time.Time     `json:"endDate"`
	ProgramManager string         `json:"programManager"`
	LeadTeacher    string         `json:"leadTeacher"`
	TotalHours     *int           `json:"totalHours"`
}

// ToDomain builds the cohort, applying defaults relative to now.
func (req *CohortRequest) ToDomain(now time.Time) *domain.Cohort {
	cohort := &domain.Cohort{
		InProgress:     req.InProgress,
		CohortSlug:     req.CohortSlug,
		CohortName:     req.CohortName,
		Program:        req.Program,
		Campus:         req.Campus,
		StartDate:      storedTime(now),
		ProgramManager: req.ProgramManager,
		LeadTeacher:    req.LeadTeacher,
		TotalHours:     domain.DefaultTotalHours,
	}
	if req.StartDate != nil {
		cohort.StartDate = storedTime(*req.StartDate)
	}
	if req.EndDate != nil {
		end := storedTime(*req.EndDate)
		cohort.EndDate = &end
	}
	if req.TotalHours != nil {
		cohort.TotalHours = *req.TotalHours
	}
	return cohort
}

// StudentRequest is the fixed field set accepted when creating or replacing a student.
type StudentRequest struct {
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	LinkedinURL string            `json:"linkedinUrl"`
	Languages   []domain.Language `json:"languages"`
	Program     domain.Program    `json:"program"`
	Background  string            `json:"background"`
	Image       string            `json:"image"`
	Cohort      *string           `json:"cohort"`
	Projects    []string          `json:"projects"`
}

// ToDomain builds the student, applying defaults.
// An empty cohort reference means no cohort; any other value must be a
// hex identifier or a *domain.ValidationError is returned.
func (req *StudentRequest) ToDomain() (*domain.Student, error) {
	student := &domain.Student{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		LinkedinURL: req.LinkedinURL,
		Languages:   req.Languages,
		Program:     req.Program,
		Background:  req.Background,
		Image:       req.Image,
		Projects:    req.Projects,
	}
	if student.Image == "" {
		student.Image = domain.DefaultStudentImage
	}
	if student.Languages == nil {
		student.Languages = []domain.Language{}
	}
	if student.Projects == nil {
		student.Projects = []string{}
	}
	if req.Cohort != nil && *req.Cohort != "" {
		ref, err := domain.ParseID(*req.Cohort)
		if err != nil {
			return nil, domain.NewValidationError("cohort", "must be a valid id", err)
		}
		student.Cohort = &ref
	}
	return student, nil
}

// storedTime normalizes t to the millisecond UTC instant both stores keep.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// SignupRequest defines the payload for the user signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse defines the successful response for the login and refresh endpoints.
type AuthResponse struct {
	// AuthToken is the JWT used for API authorization
	AuthToken string `json:"authToken"`

	// RefreshToken is the JWT used to obtain a new token pair
	RefreshToken string `json:"refreshToken"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expiresAt"`
}

// VerifyResponse is returned for a valid token.
type VerifyResponse struct {
	Message string      `json:"message"`
	User    interface{} `json:"user"`
}
