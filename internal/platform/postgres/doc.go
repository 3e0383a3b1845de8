// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the internal/store package. It is selected with
// database.driver=postgres and owns the schema through embedded goose
// migrations. Identifiers keep their 24 character hex form so ids stay
// interchangeable with the MongoDB backend.
package postgres
