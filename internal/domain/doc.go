// Package domain contains the core entities of the cohort tools API: cohorts,
// students and users, together with their validation rules and the errors
// they report. It has no knowledge of HTTP or of any particular store.
//
// Every record is identified by an ID, a 12-byte ObjectID rendered as 24 hex
// characters. Both store backends use the same identifier format, so a
// malformed identifier can be rejected before any store call is made.
package domain
