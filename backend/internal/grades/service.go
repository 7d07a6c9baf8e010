// ============================================================================
// backend/internal/grades/service.go
// Gradebook service: persistence sync, enrollment fan-out, course views
// ============================================================================

package grades

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	"sga_secundaria/backend/internal/shared"
	"sga_secundaria/backend/internal/store"
)

// Service maintains the invariant that every (student, course) pair of a
// grade-level has exactly one grade record, and writes edited grades back
// through the store. All reads go to the store; nothing is cached.
type Service struct {
	reg *store.Registry
}

// NewService creates a gradebook service over the registry
func NewService(reg *store.Registry) *Service {
	return &Service{reg: reg}
}

// Registry exposes the underlying registry for read-only consumers
func (s *Service) Registry() *store.Registry {
	return s.reg
}

// ============================================================================
// Grade Record Views
// ============================================================================

// StudentGrades returns a student's grade records, optionally restricted
// to one course. A student with no records yields an empty slice.
func (s *Service) StudentGrades(ctx context.Context, studentID, courseID string) ([]*shared.StudentGrade, error) {
	records, err := s.reg.GradesByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if courseID == "" {
		return records, nil
	}
	var matched []*shared.StudentGrade
	for _, record := range records {
		if record.CourseID == courseID {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// CourseGrades returns every grade record of one course in ascending
// student-id order
func (s *Service) CourseGrades(ctx context.Context, courseID string) ([]*shared.StudentGrade, error) {
	return s.reg.GradesByCourse(ctx, courseID)
}

// ============================================================================
// Persistence Sync
// ============================================================================

// SaveEditedGrades writes every edited record through to the store,
// replacing all four unit slots of any existing record with the same id.
// Saving the same batch twice is a no-op. Dependent views must re-read
// from the store afterwards; this service hands out no cached copies.
func (s *Service) SaveEditedGrades(ctx context.Context, edited map[string]*shared.StudentGrade) error {
	for id, record := range edited {
		if record == nil {
			continue
		}
		if err := s.reg.PutGrade(ctx, record); err != nil {
			return fmt.Errorf("failed to save grade record %q: %w", id, err)
		}
	}
	log.Printf("[Gradebook] Saved %d edited grade records", len(edited))
	return nil
}

// UpdateStudentGrade writes a single grade record through to the store
func (s *Service) UpdateStudentGrade(ctx context.Context, record *shared.StudentGrade) error {
	if record == nil {
		return fmt.Errorf("grade record cannot be nil")
	}
	return s.reg.PutGrade(ctx, record)
}

// ============================================================================
// Student Lifecycle
// ============================================================================

// EnrollStudent registers a student and creates one blank grade record per
// course offered in the student's grade-level
func (s *Service) EnrollStudent(ctx context.Context, student *shared.Student, password string) error {
	if err := shared.ValidatePassword(password); err != nil {
		return err
	}
	duplicate, err := s.fullNameTaken(ctx, student.FullName, student.ID)
	if err != nil {
		return err
	}
	if duplicate {
		return fmt.Errorf("an account named %q already exists", student.FullName)
	}

	hash, err := shared.HashPassword(password)
	if err != nil {
		return err
	}
	student.PasswordHash = hash

	if err := s.reg.PutStudent(ctx, student); err != nil {
		return err
	}

	courses, err := s.reg.CoursesByGrade(ctx, student.GradeID)
	if err != nil {
		return err
	}
	for _, course := range courses {
		if err := s.reg.PutGrade(ctx, shared.BlankGradeRecord(student.ID, course.ID)); err != nil {
			return err
		}
	}
	log.Printf("[Gradebook] Enrolled student %s with %d blank grade records", student.ID, len(courses))
	return nil
}

// UpdateStudent replaces an existing student record; updating an unknown
// student is a no-op
func (s *Service) UpdateStudent(ctx context.Context, student *shared.Student) error {
	existing, err := s.reg.Student(ctx, student.ID)
	if err != nil || existing == nil {
		return err
	}
	if student.PasswordHash == "" {
		student.PasswordHash = existing.PasswordHash
	}
	return s.reg.PutStudent(ctx, student)
}

// RemoveStudent deletes a student and every grade record the student owns
func (s *Service) RemoveStudent(ctx context.Context, studentID string) error {
	if err := s.reg.DeleteStudent(ctx, studentID); err != nil {
		return err
	}
	records, err := s.reg.GradesByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := s.reg.DeleteGrade(ctx, record.StudentID, record.CourseID); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Teacher Lifecycle
// ============================================================================

// RegisterTeacher stores a teacher account with a hashed password
func (s *Service) RegisterTeacher(ctx context.Context, teacher *shared.Teacher, password string) error {
	if err := shared.ValidatePassword(password); err != nil {
		return err
	}
	duplicate, err := s.fullNameTaken(ctx, teacher.FullName, teacher.ID)
	if err != nil {
		return err
	}
	if duplicate {
		return fmt.Errorf("an account named %q already exists", teacher.FullName)
	}

	hash, err := shared.HashPassword(password)
	if err != nil {
		return err
	}
	teacher.PasswordHash = hash
	return s.reg.PutTeacher(ctx, teacher)
}

// UpdateTeacher replaces an existing teacher record; updating an unknown
// teacher is a no-op
func (s *Service) UpdateTeacher(ctx context.Context, teacher *shared.Teacher) error {
	existing, err := s.reg.Teacher(ctx, teacher.ID)
	if err != nil || existing == nil {
		return err
	}
	if teacher.PasswordHash == "" {
		teacher.PasswordHash = existing.PasswordHash
	}
	return s.reg.PutTeacher(ctx, teacher)
}

// RemoveTeacher deletes a teacher account. Courses owned by the teacher
// are left in place; joins tolerate the dangling owner id.
func (s *Service) RemoveTeacher(ctx context.Context, teacherID string) error {
	return s.reg.DeleteTeacher(ctx, teacherID)
}

// ============================================================================
// Course Lifecycle
// ============================================================================

// CreateCourse builds a course with a fresh id and adds it to a
// grade-level, fanning out blank grade records to every enrolled student
func (s *Service) CreateCourse(ctx context.Context, name, gradeID, teacherID string) (*shared.Course, error) {
	course, err := shared.NewCourse(uuid.NewString(), name, gradeID, teacherID)
	if err != nil {
		return nil, err
	}
	if err := s.AddCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// AddCourse stores a course and creates one blank grade record per
// student enrolled in the course's grade-level
func (s *Service) AddCourse(ctx context.Context, course *shared.Course) error {
	if err := s.reg.PutCourse(ctx, course); err != nil {
		return err
	}
	students, err := s.reg.StudentsByGrade(ctx, course.GradeID)
	if err != nil {
		return err
	}
	for _, student := range students {
		if err := s.reg.PutGrade(ctx, shared.BlankGradeRecord(student.ID, course.ID)); err != nil {
			return err
		}
	}
	log.Printf("[Gradebook] Added course %s with %d blank grade records", course.ID, len(students))
	return nil
}

// UpdateCourse replaces an existing course record; updating an unknown
// course is a no-op
func (s *Service) UpdateCourse(ctx context.Context, course *shared.Course) error {
	existing, err := s.reg.Course(ctx, course.ID)
	if err != nil || existing == nil {
		return err
	}
	return s.reg.PutCourse(ctx, course)
}

// RemoveCourse deletes a course and every grade record attached to it
func (s *Service) RemoveCourse(ctx context.Context, courseID string) error {
	if err := s.reg.DeleteCourse(ctx, courseID); err != nil {
		return err
	}
	records, err := s.reg.GradesByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := s.reg.DeleteGrade(ctx, record.StudentID, record.CourseID); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Course Views
// ============================================================================

// CourseRoster returns the students of the course's grade-level. An
// unknown course resolves to an empty roster, never an error.
func (s *Service) CourseRoster(ctx context.Context, courseID string) ([]*shared.Student, error) {
	course, err := s.reg.Course(ctx, courseID)
	if err != nil || course == nil {
		return nil, err
	}
	return s.reg.StudentsByGrade(ctx, course.GradeID)
}

// AtRiskStudent pairs a student with a failing complete course average
type AtRiskStudent struct {
	Student *shared.Student
	Average float64
}

// StudentsAtRisk lists the students of one course whose complete course
// average is below the passing mark, worst first
func (s *Service) StudentsAtRisk(ctx context.Context, courseID string) ([]AtRiskStudent, error) {
	roster, err := s.CourseRoster(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var atRisk []AtRiskStudent
	for _, student := range roster {
		record, err := s.reg.Grade(ctx, student.ID, courseID)
		if err != nil {
			return nil, err
		}
		avg := CourseAverage(record)
		if avg != nil && !IsPassing(*avg) {
			atRisk = append(atRisk, AtRiskStudent{Student: student, Average: *avg})
		}
	}
	sort.SliceStable(atRisk, func(i, j int) bool {
		return atRisk[i].Average < atRisk[j].Average
	})
	return atRisk, nil
}

// Totals holds the entity counts shown on the admin dashboard
type Totals struct {
	Students int
	Teachers int
	Courses  int
}

// Totals counts the stored entity collections
func (s *Service) Totals(ctx context.Context) (*Totals, error) {
	students, err := s.reg.Students(ctx)
	if err != nil {
		return nil, err
	}
	teachers, err := s.reg.Teachers(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.reg.Courses(ctx)
	if err != nil {
		return nil, err
	}
	return &Totals{Students: len(students), Teachers: len(teachers), Courses: len(courses)}, nil
}

func (s *Service) fullNameTaken(ctx context.Context, fullName, excludeID string) (bool, error) {
	students, err := s.reg.Students(ctx)
	if err != nil {
		return false, err
	}
	for _, st := range students {
		if st.ID != excludeID && strings.EqualFold(st.FullName, fullName) {
			return true, nil
		}
	}
	teachers, err := s.reg.Teachers(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range teachers {
		if t.ID != excludeID && strings.EqualFold(t.FullName, fullName) {
			return true, nil
		}
	}
	return false, nil
}
