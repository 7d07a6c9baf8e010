// ============================================================================
// backend/internal/ranking/service.go
// Merit ranking of students within a grade-level section
// ============================================================================

// Package ranking derives each student's overall average and the merit
// ranking of a section. Everything is recomputed from the store on every
// call; there is no cached standing to go stale.
package ranking

import (
	"context"
	"sort"

	"github.com/montanaflynn/stats"

	"sga_secundaria/backend/internal/grades"
	"sga_secundaria/backend/internal/shared"
	"sga_secundaria/backend/internal/store"
)

// RankedStudent is one row of a section ranking
type RankedStudent struct {
	Rank    int
	Student *shared.Student
	Average float64
}

// Service computes rankings over the registry
type Service struct {
	reg *store.Registry
}

// NewService creates a ranking service over the registry
func NewService(reg *store.Registry) *Service {
	return &Service{reg: reg}
}

// OverallAverage computes a student's overall average restricted to the
// courses of one grade-level: the mean of the complete per-course
// averages, rounded to one decimal. It returns nil when no course has all
// four units graded. Records pointing at deleted or cross-grade courses
// are excluded rather than failing.
func (s *Service) OverallAverage(ctx context.Context, studentID, gradeID string) (*float64, error) {
	records, err := s.reg.GradesByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	courses, err := s.reg.CoursesByGrade(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	inGrade := make(map[string]bool, len(courses))
	for _, course := range courses {
		inGrade[course.ID] = true
	}

	var gradeRecords []*shared.StudentGrade
	for _, record := range records {
		if inGrade[record.CourseID] {
			gradeRecords = append(gradeRecords, record)
		}
	}
	return grades.GeneralAverage(gradeRecords), nil
}

// SectionRanking computes the merit ranking of one grade-level section:
// students with an overall average, sorted descending, ranks 1..N.
// Students without data are excluded. Equal averages keep the store's
// key order, so repeated runs over the same input agree.
func (s *Service) SectionRanking(ctx context.Context, gradeID, section string) ([]RankedStudent, error) {
	students, err := s.reg.StudentsBySection(ctx, gradeID, section)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedStudent, 0, len(students))
	for _, student := range students {
		avg, err := s.OverallAverage(ctx, student.ID, gradeID)
		if err != nil {
			return nil, err
		}
		if avg == nil {
			continue
		}
		ranked = append(ranked, RankedStudent{Student: student, Average: *avg})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Average > ranked[j].Average
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// StudentRanking returns a student's 1-based position in the section
// ranking, or nil when the student has no overall average on record
func (s *Service) StudentRanking(ctx context.Context, studentID, gradeID, section string) (*int, error) {
	ranked, err := s.SectionRanking(ctx, gradeID, section)
	if err != nil {
		return nil, err
	}
	for _, row := range ranked {
		if row.Student.ID == studentID {
			rank := row.Rank
			return &rank, nil
		}
	}
	return nil, nil
}

// SectionSummary aggregates the overall averages of one ranked section
type SectionSummary struct {
	Ranked int
	Mean   float64
	Min    float64
	Max    float64
}

// Summary computes mean, minimum and maximum of a section's overall
// averages. A section with no ranked students yields nil.
func (s *Service) Summary(ctx context.Context, gradeID, section string) (*SectionSummary, error) {
	ranked, err := s.SectionRanking(ctx, gradeID, section)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	averages := make([]float64, len(ranked))
	for i, row := range ranked {
		averages[i] = row.Average
	}

	mean, err := stats.Mean(averages)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(averages)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(averages)
	if err != nil {
		return nil, err
	}
	return &SectionSummary{Ranked: len(ranked), Mean: mean, Min: min, Max: max}, nil
}
