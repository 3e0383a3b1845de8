package domain

import (
	"time"
)

// DefaultTotalHours is the course length assigned when a cohort omits it.
const DefaultTotalHours = 360

// Program is the course track a cohort runs or a student follows.
type Program string

// Supported programs.
const (
	ProgramWebDev        Program = "Web Dev"
	ProgramUXUI          Program = "UX/UI"
	ProgramDataAnalytics Program = "Data Analytics"
	ProgramCybersecurity Program = "Cybersecurity"
)

// IsValid reports whether p is one of the supported programs.
func (p Program) IsValid() bool {
	switch p {
	case ProgramWebDev, ProgramUXUI, ProgramDataAnalytics, ProgramCybersecurity:
		return true
	}
	return false
}

// Campus is the location a cohort is taught from.
type Campus string

// Supported campuses.
const (
	CampusMadrid    Campus = "Madrid"
	CampusBarcelona Campus = "Barcelona"
	CampusMiami     Campus = "Miami"
	CampusParis     Campus = "Paris"
	CampusBerlin    Campus = "Berlin"
	CampusAmsterdam Campus = "Amsterdam"
	CampusLisbon    Campus = "Lisbon"
	CampusRemote    Campus = "Remote"
)

// IsValid reports whether c is one of the supported campuses.
func (c Campus) IsValid() bool {
	switch c {
	case CampusMadrid, CampusBarcelona, CampusMiami, CampusParis,
		CampusBerlin, CampusAmsterdam, CampusLisbon, CampusRemote:
		return true
	}
	return false
}

// Cohort is a named class instance with its schedule and staffing.
type Cohort struct {
	ID             ID         `json:"id"             bson:"_id"`
	InProgress     bool       `json:"inProgress"     bson:"inProgress"`
	CohortSlug     string     `json:"cohortSlug"     bson:"cohortSlug"         validate:"required"`
	CohortName     string     `json:"cohortName"     bson:"cohortName"         validate:"required"`
	Program        Program    `json:"program"        bson:"program"            validate:"required,enum"`
	Campus         Campus     `json:"campus"         bson:"campus"             validate:"required,enum"`
	StartDate      time.Time  `json:"startDate"      bson:"startDate"`
	EndDate        *time.Time `json:"endDate"        bson:"endDate,omitempty"`
	ProgramManager string     `json:"programManager" bson:"programManager"     validate:"required"`
	LeadTeacher    string     `json:"leadTeacher"    bson:"leadTeacher"        validate:"required"`
	TotalHours     int        `json:"totalHours"     bson:"totalHours"         validate:"gte=0"`
}

var _ Entity = (*Cohort)(nil)

// GetID implements Entity.
func (c *Cohort) GetID() ID { return c.ID }

// SetID implements Entity.
func (c *Cohort) SetID(id ID) { c.ID = id }

// Validate checks if the Cohort has valid data.
func (c *Cohort) Validate() error {
	if c.ID.IsZero() {
		return NewValidationError("id", "is required", ErrInvalidID)
	}

	if err := validateStruct(c); err != nil {
		return err
	}

	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return NewValidationError("endDate", "must not be before startDate", ErrValidation)
	}

	return nil
}
