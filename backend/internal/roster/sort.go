// ============================================================================
// backend/internal/roster/sort.go
// Alphabetic and merit ordering of student rosters
// ============================================================================

// Package roster orders and filters student lists for the dashboards.
package roster

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"sga_secundaria/backend/internal/grades"
	"sga_secundaria/backend/internal/shared"
)

// SortByLastName returns the students ordered by full name under Spanish
// collation. Full names are already "Apellidos, Nombres", so this is a
// surname ordering. The sort is stable and the input slice is untouched.
func SortByLastName(students []*shared.Student) []*shared.Student {
	sorted := make([]*shared.Student, len(students))
	copy(sorted, students)

	c := collate.New(language.Spanish)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].FullName, sorted[j].FullName) < 0
	})
	return sorted
}

// Options selects the filtering and ordering of FilterAndSort
type Options struct {
	// Section filters by exact section label when non-empty
	Section string
	// ByMerit orders by descending course average instead of surname
	ByMerit bool
	// CourseGrades supplies the records averaged in merit mode
	CourseGrades []*shared.StudentGrade
}

// FilterAndSort applies an optional section filter, then orders either by
// surname or by descending course average. In merit mode students without
// a complete average come after every averaged student; order among
// equals is stable.
func FilterAndSort(students []*shared.Student, opts Options) []*shared.Student {
	filtered := students
	if opts.Section != "" {
		filtered = make([]*shared.Student, 0, len(students))
		for _, s := range students {
			if s.Section == opts.Section {
				filtered = append(filtered, s)
			}
		}
	}

	if !opts.ByMerit {
		return SortByLastName(filtered)
	}

	averages := make(map[string]*float64, len(filtered))
	for _, s := range filtered {
		averages[s.ID] = grades.CourseAverage(findRecord(opts.CourseGrades, s.ID))
	}

	sorted := make([]*shared.Student, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		avgI, avgJ := averages[sorted[i].ID], averages[sorted[j].ID]
		switch {
		case avgI == nil:
			return false
		case avgJ == nil:
			return true
		default:
			return *avgI > *avgJ
		}
	})
	return sorted
}

func findRecord(records []*shared.StudentGrade, studentID string) *shared.StudentGrade {
	for _, record := range records {
		if record != nil && record.StudentID == studentID {
			return record
		}
	}
	return nil
}
