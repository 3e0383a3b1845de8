// Package service contains the application-specific use cases. It orchestrates
// domain validation, the repositories defined in internal/store and event
// emission to fulfill the API's operations.
//
// Key components:
//
//   - Records: the generic create/read/replace/delete flow shared by cohorts and students
//   - StudentService: adds cohort lookups and populated student read models
//   - UserService: signup, credential checks and owner-only profile reads
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
