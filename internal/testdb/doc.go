// Package testdb starts throwaway MongoDB and PostgreSQL servers with
// testcontainers for the integration tests. Containers are shared by every
// test in a package run; each test gets its own database (MongoDB) or a
// truncated schema (PostgreSQL).
//
// The helpers are only compiled with the integration build tag:
//
//	go test -tags=integration ./...
package testdb
