// Package mongodb provides MongoDB implementations of the storage interfaces
// defined in the internal/store package. Cohorts, students and users live in
// one collection each; identifiers are stored as the native ObjectID _id.
package mongodb
