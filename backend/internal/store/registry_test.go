package store

import (
	"context"
	"testing"

	"sga_secundaria/backend/internal/shared"
)

func TestRegistry_StudentRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryStore())

	s := &shared.Student{
		ID: "s1", FirstName: "Ana", PaternalLastName: "Pérez", MaternalLastName: "Rojas",
		FullName: "Pérez Rojas, Ana", Email: "s1@escuela.com",
		GradeID: "g1", Section: shared.SectionA, EnrollmentYear: 2024, Role: shared.RoleStudent,
	}
	if err := reg.PutStudent(ctx, s); err != nil {
		t.Fatalf("PutStudent failed: %v", err)
	}

	got, err := reg.Student(ctx, "s1")
	if err != nil {
		t.Fatalf("Student failed: %v", err)
	}
	if got == nil || got.FullName != s.FullName || got.Section != shared.SectionA {
		t.Errorf("Round trip mismatch: %+v", got)
	}

	missing, err := reg.Student(ctx, "nope")
	if err != nil {
		t.Fatalf("Student failed: %v", err)
	}
	if missing != nil {
		t.Error("Absent student should resolve to nil, not an error or a value")
	}
}

func TestRegistry_CorruptEntryTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	reg := NewRegistry(kv)

	kv.Set(ctx, StudentKey("bad"), []byte("{not json"))
	kv.Set(ctx, StudentKey("good"), []byte(`{"id":"good","full_name":"Zapata, Bea","grade_id":"g1","section":"B"}`))

	got, err := reg.Student(ctx, "bad")
	if err != nil {
		t.Fatalf("Corrupt entry must not surface an error: %v", err)
	}
	if got != nil {
		t.Error("Corrupt entry should be treated as absent")
	}

	students, err := reg.Students(ctx)
	if err != nil {
		t.Fatalf("Students failed: %v", err)
	}
	if len(students) != 1 || students[0].ID != "good" {
		t.Errorf("Corrupt entry should be skipped in scans, got %d students", len(students))
	}
}

func TestRegistry_GradeQueries(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryStore())

	for _, pair := range [][2]string{{"s1", "c1"}, {"s1", "c2"}, {"s2", "c1"}} {
		if err := reg.PutGrade(ctx, shared.BlankGradeRecord(pair[0], pair[1])); err != nil {
			t.Fatalf("PutGrade failed: %v", err)
		}
	}

	byStudent, err := reg.GradesByStudent(ctx, "s1")
	if err != nil {
		t.Fatalf("GradesByStudent failed: %v", err)
	}
	if len(byStudent) != 2 {
		t.Errorf("Expected 2 records for s1, got %d", len(byStudent))
	}

	byCourse, err := reg.GradesByCourse(ctx, "c1")
	if err != nil {
		t.Fatalf("GradesByCourse failed: %v", err)
	}
	if len(byCourse) != 2 {
		t.Errorf("Expected 2 records for c1, got %d", len(byCourse))
	}

	record, err := reg.Grade(ctx, "s1", "c2")
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if record == nil || record.ID != "s1-c2" {
		t.Errorf("Unexpected record: %+v", record)
	}

	absent, err := reg.Grade(ctx, "s9", "c1")
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if absent != nil {
		t.Error("Missing (student, course) pair should resolve to nil")
	}
}

func TestRegistry_CourseFilters(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryStore())

	courses := []*shared.Course{
		{ID: "c1", Name: "Matemática", GradeID: "g1", TeacherID: "t1"},
		{ID: "c2", Name: "Comunicación", GradeID: "g1", TeacherID: "t2"},
		{ID: "c3", Name: "Matemática", GradeID: "g2", TeacherID: "t1"},
	}
	for _, c := range courses {
		if err := reg.PutCourse(ctx, c); err != nil {
			t.Fatalf("PutCourse failed: %v", err)
		}
	}

	g1, err := reg.CoursesByGrade(ctx, "g1")
	if err != nil {
		t.Fatalf("CoursesByGrade failed: %v", err)
	}
	if len(g1) != 2 {
		t.Errorf("Expected 2 courses in g1, got %d", len(g1))
	}

	t1, err := reg.CoursesByTeacher(ctx, "t1")
	if err != nil {
		t.Fatalf("CoursesByTeacher failed: %v", err)
	}
	if len(t1) != 2 {
		t.Errorf("Expected 2 courses owned by t1, got %d", len(t1))
	}
}
