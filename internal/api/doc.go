// Package api contains the HTTP handlers for cohorts, students, users and
// authentication. Handlers decode requests into DTOs, call the service layer
// and map every failure through HandleAPIError, so each error is classified
// exactly once and only a safe message reaches the client.
package api
