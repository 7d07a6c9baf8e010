// ============================================================================
// backend/internal/store/store.go
// Key-value store boundary and the structured keyspace
// ============================================================================

// Package store holds the key-value boundary the grade-management core is
// built on. The core only ever sees Get/Set/Delete plus a prefix scan over
// structured string keys, so the physical medium can be swapped without
// touching the calculation or ranking layers.
package store

import (
	"context"
)

// Entry is one key-value pair returned by a prefix scan
type Entry struct {
	Key   string
	Value []byte
}

// Store is the narrow persistence interface consumed by the core.
// Absent keys are reported through the ok flag, never as an error.
// ScanPrefix must return entries in ascending key order on every
// implementation; rankings rely on that order as a reproducible tie-break.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}

// ============================================================================
// Keyspace
// ============================================================================

// Key prefixes for the entity collections owned by the store
const (
	StudentKeyPrefix = "student:"
	TeacherKeyPrefix = "teacher:"
	CourseKeyPrefix  = "course:"
	GradeKeyPrefix   = "grade:"
)

// StudentKey builds the store key for a student id
func StudentKey(studentID string) string {
	return StudentKeyPrefix + studentID
}

// TeacherKey builds the store key for a teacher id
func TeacherKey(teacherID string) string {
	return TeacherKeyPrefix + teacherID
}

// CourseKey builds the store key for a course id
func CourseKey(courseID string) string {
	return CourseKeyPrefix + courseID
}

// GradeKey builds the store key for a (student, course) grade record
func GradeKey(studentID, courseID string) string {
	return GradeKeyPrefix + studentID + ":" + courseID
}

// StudentGradesPrefix is the scan prefix covering every grade record of
// one student
func StudentGradesPrefix(studentID string) string {
	return GradeKeyPrefix + studentID + ":"
}
