// Package config loads the server settings from COHORT_* environment
// variables and an optional config.yaml, applies defaults and validates the
// result. The store URL, the JWT secret and the optional Redis and NATS
// endpoints all come from here; nothing else reads the environment.
package config
