// ============================================================================
// backend/internal/shared/models.go
// Shared data models for the grade-management core
// ============================================================================

package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ============================================================================
// Grade-Level Catalog
// ============================================================================

// GradeLevel represents one of the five secondary-school year cohorts
type GradeLevel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// GradeLevels is the fixed catalog of secondary grade-levels
var GradeLevels = []GradeLevel{
	{ID: "g1", Name: "1° Secundaria", Level: "1"},
	{ID: "g2", Name: "2° Secundaria", Level: "2"},
	{ID: "g3", Name: "3° Secundaria", Level: "3"},
	{ID: "g4", Name: "4° Secundaria", Level: "4"},
	{ID: "g5", Name: "5° Secundaria", Level: "5"},
}

// GradeLevelName resolves a grade-level id to its display name
func GradeLevelName(gradeID string) string {
	for _, g := range GradeLevels {
		if g.ID == gradeID {
			return g.Name
		}
	}
	return "Grado no encontrado"
}

// IsValidGradeLevel reports whether the id belongs to the catalog
func IsValidGradeLevel(gradeID string) bool {
	for _, g := range GradeLevels {
		if g.ID == gradeID {
			return true
		}
	}
	return false
}

// ============================================================================
// User Models
// ============================================================================

// Student represents an enrolled student account
type Student struct {
	ID               string    `json:"id" validate:"required"`
	FirstName        string    `json:"first_name" validate:"required"`
	PaternalLastName string    `json:"paternal_last_name" validate:"required"`
	MaternalLastName string    `json:"maternal_last_name" validate:"required"`
	FullName         string    `json:"full_name" validate:"required"` // "Apellidos, Nombres"
	Email            string    `json:"email" validate:"required,email"`
	PasswordHash     string    `json:"password_hash,omitempty"`
	GradeID          string    `json:"grade_id" validate:"required"`
	Section          string    `json:"section" validate:"required,oneof=A B"`
	EnrollmentYear   int       `json:"enrollment_year" validate:"required,min=2000"`
	Role             string    `json:"role" validate:"required,eq=student"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// Teacher represents a teacher account; a teacher may own courses
// across several grade-levels
type Teacher struct {
	ID               string    `json:"id" validate:"required"`
	FirstName        string    `json:"first_name" validate:"required"`
	PaternalLastName string    `json:"paternal_last_name" validate:"required"`
	MaternalLastName string    `json:"maternal_last_name" validate:"required"`
	FullName         string    `json:"full_name" validate:"required"`
	Email            string    `json:"email" validate:"required,email"`
	PasswordHash     string    `json:"password_hash,omitempty"`
	Role             string    `json:"role" validate:"required,eq=teacher"`
	Specialty        string    `json:"specialty" validate:"required"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// Principal is the identity handed to every dashboard by the session layer.
// The role set is closed: student, teacher, admin, support.
type Principal struct {
	ID   string `json:"id" validate:"required"`
	Role string `json:"role" validate:"required,oneof=student teacher admin support"`
	Name string `json:"name" validate:"required"`
}

// ============================================================================
// Course Models
// ============================================================================

// Course belongs to exactly one grade-level and one teacher
type Course struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	GradeID   string    `json:"grade_id" validate:"required"`
	TeacherID string    `json:"teacher_id" validate:"required"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ============================================================================
// Grade Models
// ============================================================================

// Component weights and value bounds for the 0-20 grading scale
const (
	WeightTareas     = 0.30
	WeightConceptual = 0.30
	WeightExamenes   = 0.40

	MinGradeValue = 0.0
	MaxGradeValue = 20.0

	// PassingAverage is the minimum passing mark on the 0-20 scale
	PassingAverage = 11.0

	// UnitsPerCourse is the number of grading periods in a school year
	UnitsPerCourse = 4
)

// GradeComponent holds the three weighted sub-scores of one unit.
// A zero value on any axis is a real grade, not a sentinel.
type GradeComponent struct {
	Tareas     float64 `json:"tareas" validate:"min=0,max=20"`
	Conceptual float64 `json:"conceptual" validate:"min=0,max=20"`
	Examenes   float64 `json:"examenes" validate:"min=0,max=20"`
}

// IsZero reports whether all three sub-scores are zero
func (c GradeComponent) IsZero() bool {
	return c.Tareas == 0 && c.Conceptual == 0 && c.Examenes == 0
}

// StudentGrade is the per-(student, course) grade record. A nil unit means
// "no grade entered", which is distinct from an all-zero component.
type StudentGrade struct {
	ID        string          `json:"id" validate:"required"`
	StudentID string          `json:"student_id" validate:"required"`
	CourseID  string          `json:"course_id" validate:"required"`
	Unidad1   *GradeComponent `json:"unidad1"`
	Unidad2   *GradeComponent `json:"unidad2"`
	Unidad3   *GradeComponent `json:"unidad3"`
	Unidad4   *GradeComponent `json:"unidad4"`
}

// Units returns the four unit slots in school-year order
func (g *StudentGrade) Units() [UnitsPerCourse]*GradeComponent {
	return [UnitsPerCourse]*GradeComponent{g.Unidad1, g.Unidad2, g.Unidad3, g.Unidad4}
}

// Unit returns one unit slot by 1-based unit number
func (g *StudentGrade) Unit(unit int) (*GradeComponent, error) {
	switch unit {
	case 1:
		return g.Unidad1, nil
	case 2:
		return g.Unidad2, nil
	case 3:
		return g.Unidad3, nil
	case 4:
		return g.Unidad4, nil
	default:
		return nil, fmt.Errorf("invalid unit number: %d", unit)
	}
}

// SetUnit replaces one unit slot by 1-based unit number
func (g *StudentGrade) SetUnit(unit int, c *GradeComponent) error {
	switch unit {
	case 1:
		g.Unidad1 = c
	case 2:
		g.Unidad2 = c
	case 3:
		g.Unidad3 = c
	case 4:
		g.Unidad4 = c
	default:
		return fmt.Errorf("invalid unit number: %d", unit)
	}
	return nil
}

// GradeRecordID derives the canonical record id for a (student, course) pair
func GradeRecordID(studentID, courseID string) string {
	return studentID + "-" + courseID
}

// BlankGradeRecord creates the ungraded record for a (student, course) pair
func BlankGradeRecord(studentID, courseID string) *StudentGrade {
	return &StudentGrade{
		ID:        GradeRecordID(studentID, courseID),
		StudentID: studentID,
		CourseID:  courseID,
	}
}

// ============================================================================
// Constructors
// ============================================================================

// NewStudent builds a Student with derived id, full name and email, and
// rejects it when a required field is absent or the section is unknown
func NewStudent(firstName, paternalLastName, maternalLastName, gradeID, section string, enrollmentYear int) (*Student, error) {
	if !IsValidGradeLevel(gradeID) {
		return nil, fmt.Errorf("unknown grade-level: %q", gradeID)
	}

	id := GenerateStudentID(firstName, paternalLastName, maternalLastName, enrollmentYear)
	s := &Student{
		ID:               id,
		FirstName:        strings.TrimSpace(firstName),
		PaternalLastName: strings.TrimSpace(paternalLastName),
		MaternalLastName: strings.TrimSpace(maternalLastName),
		FullName:         FormatFullName(firstName, paternalLastName, maternalLastName),
		Email:            GenerateEmail(id),
		GradeID:          gradeID,
		Section:          section,
		EnrollmentYear:   enrollmentYear,
		Role:             RoleStudent,
		CreatedAt:        time.Now(),
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid student: %w", err)
	}
	return s, nil
}

// NewTeacher builds a Teacher with derived id, full name and email
func NewTeacher(firstName, paternalLastName, maternalLastName, specialty string) (*Teacher, error) {
	id := GenerateTeacherID(firstName, paternalLastName, maternalLastName)
	t := &Teacher{
		ID:               id,
		FirstName:        strings.TrimSpace(firstName),
		PaternalLastName: strings.TrimSpace(paternalLastName),
		MaternalLastName: strings.TrimSpace(maternalLastName),
		FullName:         FormatFullName(firstName, paternalLastName, maternalLastName),
		Email:            GenerateEmail(id),
		Role:             RoleTeacher,
		Specialty:        specialty,
		CreatedAt:        time.Now(),
	}
	if err := validate.Struct(t); err != nil {
		return nil, fmt.Errorf("invalid teacher: %w", err)
	}
	return t, nil
}

// NewCourse builds a Course bound to one grade-level and one teacher
func NewCourse(id, name, gradeID, teacherID string) (*Course, error) {
	if !IsValidGradeLevel(gradeID) {
		return nil, fmt.Errorf("unknown grade-level: %q", gradeID)
	}

	c := &Course{
		ID:        id,
		Name:      strings.TrimSpace(name),
		GradeID:   gradeID,
		TeacherID: teacherID,
		CreatedAt: time.Now(),
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid course: %w", err)
	}
	return c, nil
}

// NewPrincipal validates the session identity against the closed role set
func NewPrincipal(id, role, name string) (*Principal, error) {
	p := &Principal{ID: id, Role: role, Name: name}
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid principal: %w", err)
	}
	return p, nil
}

// NewGradeComponent validates each sub-score against the 0-20 scale
func NewGradeComponent(tareas, conceptual, examenes float64) (*GradeComponent, error) {
	c := &GradeComponent{Tareas: tareas, Conceptual: conceptual, Examenes: examenes}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid grade component: %w", err)
	}
	return c, nil
}

// ============================================================================
// Validation Constants
// ============================================================================

const (
	// User roles
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleSupport = "support"

	// Sections
	SectionA = "A"
	SectionB = "B"

	// Password policy
	MinPasswordLength = 8
)

// IsValidSection reports whether the label is one of the two sections
func IsValidSection(section string) bool {
	return section == SectionA || section == SectionB
}
