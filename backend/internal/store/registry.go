// ============================================================================
// backend/internal/store/registry.go
// Typed entity access over the key-value Store
// ============================================================================

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"sga_secundaria/backend/internal/shared"
)

// Registry resolves the entity collections over the raw keyspace. Values
// are stored as JSON; an entry that no longer parses is treated as absent
// rather than surfaced to the dashboards.
type Registry struct {
	store Store
}

// NewRegistry wraps a Store with typed entity access
func NewRegistry(s Store) *Registry {
	return &Registry{store: s}
}

// Store exposes the underlying key-value store
func (r *Registry) Store() Store {
	return r.store
}

func (r *Registry) getJSON(ctx context.Context, key string, out any) (bool, error) {
	value, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(value, out); err != nil {
		log.Printf("[Registry] Corrupt entry at %q treated as absent: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (r *Registry) setJSON(ctx context.Context, key string, in any) error {
	value, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return r.store.Set(ctx, key, value)
}

// ============================================================================
// Students
// ============================================================================

// Student returns the student with the given id, or nil when absent
func (r *Registry) Student(ctx context.Context, studentID string) (*shared.Student, error) {
	var s shared.Student
	ok, err := r.getJSON(ctx, StudentKey(studentID), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// PutStudent writes a student record, replacing any previous version
func (r *Registry) PutStudent(ctx context.Context, s *shared.Student) error {
	return r.setJSON(ctx, StudentKey(s.ID), s)
}

// DeleteStudent removes a student record. Grade-record cleanup belongs to
// the gradebook service.
func (r *Registry) DeleteStudent(ctx context.Context, studentID string) error {
	return r.store.Delete(ctx, StudentKey(studentID))
}

// Students returns every student in ascending id order
func (r *Registry) Students(ctx context.Context) ([]*shared.Student, error) {
	entries, err := r.store.ScanPrefix(ctx, StudentKeyPrefix)
	if err != nil {
		return nil, err
	}
	students := make([]*shared.Student, 0, len(entries))
	for _, e := range entries {
		var s shared.Student
		if err := json.Unmarshal(e.Value, &s); err != nil {
			log.Printf("[Registry] Corrupt entry at %q skipped: %v", e.Key, err)
			continue
		}
		students = append(students, &s)
	}
	return students, nil
}

// StudentsBySection returns the students of one grade-level section in
// ascending id order
func (r *Registry) StudentsBySection(ctx context.Context, gradeID, section string) ([]*shared.Student, error) {
	students, err := r.Students(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*shared.Student
	for _, s := range students {
		if s.GradeID == gradeID && s.Section == section {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// StudentsByGrade returns the students of one grade-level in ascending
// id order
func (r *Registry) StudentsByGrade(ctx context.Context, gradeID string) ([]*shared.Student, error) {
	students, err := r.Students(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*shared.Student
	for _, s := range students {
		if s.GradeID == gradeID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// ============================================================================
// Teachers
// ============================================================================

// Teacher returns the teacher with the given id, or nil when absent
func (r *Registry) Teacher(ctx context.Context, teacherID string) (*shared.Teacher, error) {
	var t shared.Teacher
	ok, err := r.getJSON(ctx, TeacherKey(teacherID), &t)
	if err != nil || !ok {
		return nil, err
	}
	return &t, nil
}

// PutTeacher writes a teacher record, replacing any previous version
func (r *Registry) PutTeacher(ctx context.Context, t *shared.Teacher) error {
	return r.setJSON(ctx, TeacherKey(t.ID), t)
}

// DeleteTeacher removes a teacher record
func (r *Registry) DeleteTeacher(ctx context.Context, teacherID string) error {
	return r.store.Delete(ctx, TeacherKey(teacherID))
}

// Teachers returns every teacher in ascending id order
func (r *Registry) Teachers(ctx context.Context) ([]*shared.Teacher, error) {
	entries, err := r.store.ScanPrefix(ctx, TeacherKeyPrefix)
	if err != nil {
		return nil, err
	}
	teachers := make([]*shared.Teacher, 0, len(entries))
	for _, e := range entries {
		var t shared.Teacher
		if err := json.Unmarshal(e.Value, &t); err != nil {
			log.Printf("[Registry] Corrupt entry at %q skipped: %v", e.Key, err)
			continue
		}
		teachers = append(teachers, &t)
	}
	return teachers, nil
}

// ============================================================================
// Courses
// ============================================================================

// Course returns the course with the given id, or nil when absent
func (r *Registry) Course(ctx context.Context, courseID string) (*shared.Course, error) {
	var c shared.Course
	ok, err := r.getJSON(ctx, CourseKey(courseID), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

// PutCourse writes a course record, replacing any previous version
func (r *Registry) PutCourse(ctx context.Context, c *shared.Course) error {
	return r.setJSON(ctx, CourseKey(c.ID), c)
}

// DeleteCourse removes a course record. Grade-record cleanup belongs to
// the gradebook service.
func (r *Registry) DeleteCourse(ctx context.Context, courseID string) error {
	return r.store.Delete(ctx, CourseKey(courseID))
}

// Courses returns every course in ascending id order
func (r *Registry) Courses(ctx context.Context) ([]*shared.Course, error) {
	entries, err := r.store.ScanPrefix(ctx, CourseKeyPrefix)
	if err != nil {
		return nil, err
	}
	courses := make([]*shared.Course, 0, len(entries))
	for _, e := range entries {
		var c shared.Course
		if err := json.Unmarshal(e.Value, &c); err != nil {
			log.Printf("[Registry] Corrupt entry at %q skipped: %v", e.Key, err)
			continue
		}
		courses = append(courses, &c)
	}
	return courses, nil
}

// CoursesByGrade returns the courses offered in one grade-level
func (r *Registry) CoursesByGrade(ctx context.Context, gradeID string) ([]*shared.Course, error) {
	courses, err := r.Courses(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*shared.Course
	for _, c := range courses {
		if c.GradeID == gradeID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// CoursesByTeacher returns the courses owned by one teacher
func (r *Registry) CoursesByTeacher(ctx context.Context, teacherID string) ([]*shared.Course, error) {
	courses, err := r.Courses(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*shared.Course
	for _, c := range courses {
		if c.TeacherID == teacherID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// ============================================================================
// Grade Records
// ============================================================================

// Grade returns the grade record for a (student, course) pair, or nil
// when absent. A missing record means "no data", never an error.
func (r *Registry) Grade(ctx context.Context, studentID, courseID string) (*shared.StudentGrade, error) {
	var g shared.StudentGrade
	ok, err := r.getJSON(ctx, GradeKey(studentID, courseID), &g)
	if err != nil || !ok {
		return nil, err
	}
	return &g, nil
}

// PutGrade writes a grade record, replacing all four unit slots of any
// previous version
func (r *Registry) PutGrade(ctx context.Context, g *shared.StudentGrade) error {
	return r.setJSON(ctx, GradeKey(g.StudentID, g.CourseID), g)
}

// DeleteGrade removes the grade record of a (student, course) pair
func (r *Registry) DeleteGrade(ctx context.Context, studentID, courseID string) error {
	return r.store.Delete(ctx, GradeKey(studentID, courseID))
}

// GradesByStudent returns every grade record of one student in ascending
// course-id order
func (r *Registry) GradesByStudent(ctx context.Context, studentID string) ([]*shared.StudentGrade, error) {
	entries, err := r.store.ScanPrefix(ctx, StudentGradesPrefix(studentID))
	if err != nil {
		return nil, err
	}
	return decodeGrades(entries), nil
}

// GradesByCourse returns every grade record of one course in ascending
// student-id order
func (r *Registry) GradesByCourse(ctx context.Context, courseID string) ([]*shared.StudentGrade, error) {
	entries, err := r.store.ScanPrefix(ctx, GradeKeyPrefix)
	if err != nil {
		return nil, err
	}
	var matched []*shared.StudentGrade
	for _, g := range decodeGrades(entries) {
		if g.CourseID == courseID {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func decodeGrades(entries []Entry) []*shared.StudentGrade {
	grades := make([]*shared.StudentGrade, 0, len(entries))
	for _, e := range entries {
		var g shared.StudentGrade
		if err := json.Unmarshal(e.Value, &g); err != nil {
			log.Printf("[Registry] Corrupt entry at %q skipped: %v", e.Key, err)
			continue
		}
		grades = append(grades, &g)
	}
	return grades
}
