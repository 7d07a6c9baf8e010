// ============================================================================
// backend/internal/grades/calc.go
// Weighted unit grades and null-safe averages on the 0-20 scale
// ============================================================================

// Package grades implements the grade computation core and the gradebook
// service that keeps grade records consistent in the store.
package grades

import (
	"math"

	"github.com/montanaflynn/stats"

	"sga_secundaria/backend/internal/shared"
)

// round1 rounds half-up to one decimal place. Grades are never negative,
// so rounding half away from zero is the same thing.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// UnitGrade computes the weighted final grade of one unit:
// tareas 30%, conceptual 30%, examenes 40%, rounded to one decimal
func UnitGrade(c shared.GradeComponent) float64 {
	grade := c.Tareas*shared.WeightTareas +
		c.Conceptual*shared.WeightConceptual +
		c.Examenes*shared.WeightExamenes
	return round1(grade)
}

// CourseAverage computes the mean of the four unit grades, rounded to one
// decimal. It returns nil unless all four units are present; partial
// averages are never surfaced.
func CourseAverage(record *shared.StudentGrade) *float64 {
	if record == nil {
		return nil
	}

	unitGrades := make([]float64, 0, shared.UnitsPerCourse)
	for _, unit := range record.Units() {
		if unit == nil {
			continue
		}
		unitGrades = append(unitGrades, UnitGrade(*unit))
	}
	if len(unitGrades) != shared.UnitsPerCourse {
		return nil
	}

	mean, err := stats.Mean(unitGrades)
	if err != nil {
		return nil
	}
	avg := round1(mean)
	return &avg
}

// GeneralAverage averages the per-course averages of the given records,
// excluding courses without a complete average. It returns nil when no
// course qualifies.
func GeneralAverage(records []*shared.StudentGrade) *float64 {
	courseAverages := make([]float64, 0, len(records))
	for _, record := range records {
		if avg := CourseAverage(record); avg != nil {
			courseAverages = append(courseAverages, *avg)
		}
	}
	if len(courseAverages) == 0 {
		return nil
	}

	mean, err := stats.Mean(courseAverages)
	if err != nil {
		return nil
	}
	avg := round1(mean)
	return &avg
}

// IsPassing reports whether an average meets the passing mark
func IsPassing(average float64) bool {
	return average >= shared.PassingAverage
}
