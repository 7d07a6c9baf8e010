package ranking

import (
	"context"
	"testing"

	"sga_secundaria/backend/internal/shared"
	"sga_secundaria/backend/internal/store"
)

func newTestService() (*Service, *store.Registry) {
	reg := store.NewRegistry(store.NewMemoryStore())
	return NewService(reg), reg
}

func putStudent(ctx context.Context, reg *store.Registry, id, gradeID, section string) {
	reg.PutStudent(ctx, &shared.Student{
		ID: id, FirstName: "Nombre", PaternalLastName: "Apellido", MaternalLastName: "Materno",
		FullName: "Apellido Materno, " + id, Email: id + "@escuela.com",
		GradeID: gradeID, Section: section, EnrollmentYear: 2024, Role: shared.RoleStudent,
	})
}

func putCourse(ctx context.Context, reg *store.Registry, id, gradeID string) {
	reg.PutCourse(ctx, &shared.Course{ID: id, Name: "Curso " + id, GradeID: gradeID, TeacherID: "t1"})
}

// putCompleteGrade stores a record with all four units graded uniformly
func putCompleteGrade(ctx context.Context, reg *store.Registry, studentID, courseID string, value float64) {
	record := shared.BlankGradeRecord(studentID, courseID)
	c := shared.GradeComponent{Tareas: value, Conceptual: value, Examenes: value}
	for unit := 1; unit <= shared.UnitsPerCourse; unit++ {
		u := c
		record.SetUnit(unit, &u)
	}
	reg.PutGrade(ctx, record)
}

func TestSectionRanking(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService()

	putCourse(ctx, reg, "c1", "g1")
	putCourse(ctx, reg, "c2", "g1")

	putStudent(ctx, reg, "s1", "g1", shared.SectionA)
	putStudent(ctx, reg, "s2", "g1", shared.SectionA)
	putStudent(ctx, reg, "s3", "g1", shared.SectionA) // no grades at all
	putStudent(ctx, reg, "s4", "g1", shared.SectionB) // other section
	putStudent(ctx, reg, "s5", "g2", shared.SectionA) // other grade-level

	// s1: averages 14 and 16 -> overall 15.0
	putCompleteGrade(ctx, reg, "s1", "c1", 14)
	putCompleteGrade(ctx, reg, "s1", "c2", 16)
	// s2: averages 18 and 12 -> overall 15.0 (tie with s1)
	putCompleteGrade(ctx, reg, "s2", "c1", 18)
	putCompleteGrade(ctx, reg, "s2", "c2", 12)
	// s4 has data but belongs to section B
	putCompleteGrade(ctx, reg, "s4", "c1", 20)

	ranked, err := svc.SectionRanking(ctx, "g1", shared.SectionA)
	if err != nil {
		t.Fatalf("SectionRanking failed: %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("Expected 2 ranked students, got %d", len(ranked))
	}
	for i, row := range ranked {
		if row.Rank != i+1 {
			t.Errorf("Expected contiguous 1-based ranks, got rank %d at position %d", row.Rank, i)
		}
	}
	// Equal averages keep store key order: s1 before s2.
	if ranked[0].Student.ID != "s1" || ranked[1].Student.ID != "s2" {
		t.Errorf("Expected stable tie-break (s1, s2), got (%s, %s)", ranked[0].Student.ID, ranked[1].Student.ID)
	}
	if ranked[0].Average != 15.0 || ranked[1].Average != 15.0 {
		t.Errorf("Unexpected averages: %v, %v", ranked[0].Average, ranked[1].Average)
	}

	// Repeat runs over the same input agree.
	again, err := svc.SectionRanking(ctx, "g1", shared.SectionA)
	if err != nil {
		t.Fatalf("SectionRanking failed: %v", err)
	}
	for i := range ranked {
		if again[i].Student.ID != ranked[i].Student.ID || again[i].Rank != ranked[i].Rank {
			t.Fatalf("Ranking is not reproducible at position %d", i)
		}
	}
}

func TestSectionRanking_DescendingOrder(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService()

	putCourse(ctx, reg, "c1", "g1")
	values := map[string]float64{"s1": 12, "s2": 18, "s3": 15}
	for id, value := range values {
		putStudent(ctx, reg, id, "g1", shared.SectionA)
		putCompleteGrade(ctx, reg, id, "c1", value)
	}

	ranked, err := svc.SectionRanking(ctx, "g1", shared.SectionA)
	if err != nil {
		t.Fatalf("SectionRanking failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 ranked students, got %d", len(ranked))
	}
	if ranked[0].Student.ID != "s2" || ranked[1].Student.ID != "s3" || ranked[2].Student.ID != "s1" {
		t.Errorf("Expected order s2, s3, s1; got %s, %s, %s",
			ranked[0].Student.ID, ranked[1].Student.ID, ranked[2].Student.ID)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Average > ranked[i-1].Average {
			t.Errorf("Averages must be descending, got %v after %v", ranked[i].Average, ranked[i-1].Average)
		}
	}
}

func TestOverallAverage(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService()

	putCourse(ctx, reg, "c1", "g1")
	putCourse(ctx, reg, "c2", "g1")
	putCourse(ctx, reg, "c3", "g2") // cross-grade course

	putStudent(ctx, reg, "s1", "g1", shared.SectionA)

	t.Run("no records means no data", func(t *testing.T) {
		avg, err := svc.OverallAverage(ctx, "s1", "g1")
		if err != nil {
			t.Fatalf("OverallAverage failed: %v", err)
		}
		if avg != nil {
			t.Errorf("Expected nil, got %v", *avg)
		}
	})

	putCompleteGrade(ctx, reg, "s1", "c1", 14)

	t.Run("incomplete course excluded", func(t *testing.T) {
		partial := shared.BlankGradeRecord("s1", "c2")
		partial.Unidad1 = &shared.GradeComponent{Tareas: 20, Conceptual: 20, Examenes: 20}
		reg.PutGrade(ctx, partial)

		avg, err := svc.OverallAverage(ctx, "s1", "g1")
		if err != nil {
			t.Fatalf("OverallAverage failed: %v", err)
		}
		if avg == nil || *avg != 14.0 {
			t.Errorf("Expected 14.0 from the complete course only, got %v", avg)
		}
	})

	t.Run("cross-grade course excluded", func(t *testing.T) {
		putCompleteGrade(ctx, reg, "s1", "c3", 20)

		avg, err := svc.OverallAverage(ctx, "s1", "g1")
		if err != nil {
			t.Fatalf("OverallAverage failed: %v", err)
		}
		if avg == nil || *avg != 14.0 {
			t.Errorf("g2 course must not leak into the g1 average, got %v", avg)
		}
	})

	t.Run("dangling course excluded", func(t *testing.T) {
		putCompleteGrade(ctx, reg, "s1", "deleted-course", 20)

		avg, err := svc.OverallAverage(ctx, "s1", "g1")
		if err != nil {
			t.Fatalf("OverallAverage failed: %v", err)
		}
		if avg == nil || *avg != 14.0 {
			t.Errorf("Record of a deleted course must be ignored, got %v", avg)
		}
	})
}

func TestStudentRanking(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService()

	putCourse(ctx, reg, "c1", "g1")
	putStudent(ctx, reg, "s1", "g1", shared.SectionA)
	putStudent(ctx, reg, "s2", "g1", shared.SectionA)
	putStudent(ctx, reg, "s3", "g1", shared.SectionA) // never graded

	putCompleteGrade(ctx, reg, "s1", "c1", 12)
	putCompleteGrade(ctx, reg, "s2", "c1", 18)

	rank, err := svc.StudentRanking(ctx, "s2", "g1", shared.SectionA)
	if err != nil {
		t.Fatalf("StudentRanking failed: %v", err)
	}
	if rank == nil || *rank != 1 {
		t.Errorf("Expected rank 1 for s2, got %v", rank)
	}

	rank, err = svc.StudentRanking(ctx, "s1", "g1", shared.SectionA)
	if err != nil {
		t.Fatalf("StudentRanking failed: %v", err)
	}
	if rank == nil || *rank != 2 {
		t.Errorf("Expected rank 2 for s1, got %v", rank)
	}

	rank, err = svc.StudentRanking(ctx, "s3", "g1", shared.SectionA)
	if err != nil {
		t.Fatalf("StudentRanking failed: %v", err)
	}
	if rank != nil {
		t.Errorf("Student without an average must rank nil, got %v", *rank)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService()

	t.Run("empty section", func(t *testing.T) {
		summary, err := svc.Summary(ctx, "g1", shared.SectionA)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if summary != nil {
			t.Errorf("Expected nil summary, got %+v", summary)
		}
	})

	putCourse(ctx, reg, "c1", "g1")
	for id, value := range map[string]float64{"s1": 12, "s2": 16} {
		putStudent(ctx, reg, id, "g1", shared.SectionA)
		putCompleteGrade(ctx, reg, id, "c1", value)
	}

	summary, err := svc.Summary(ctx, "g1", shared.SectionA)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary == nil {
		t.Fatal("Expected a summary")
	}
	if summary.Ranked != 2 || summary.Mean != 14.0 || summary.Min != 12.0 || summary.Max != 16.0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}
