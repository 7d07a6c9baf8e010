// ============================================================================
// backend/internal/grades/edit.go
// Edit buffer for grade cells with the UI-boundary validation policy
// ============================================================================

package grades

import (
	"strconv"
	"strings"

	"sga_secundaria/backend/internal/shared"
)

// Grade component labels accepted by cell edits
const (
	ComponentTareas     = "tareas"
	ComponentConceptual = "conceptual"
	ComponentExamenes   = "examenes"
)

// EditBuffer accumulates textual cell edits against copies of grade
// records before they are saved. Invalid values are dropped at this
// boundary and keep the prior cell value; nothing is surfaced as an error.
type EditBuffer struct {
	records map[string]*shared.StudentGrade
}

// NewEditBuffer copies the given records into a fresh buffer so that the
// originals stay untouched until SaveEditedGrades
func NewEditBuffer(records []*shared.StudentGrade) *EditBuffer {
	buf := &EditBuffer{records: make(map[string]*shared.StudentGrade, len(records))}
	for _, record := range records {
		if record == nil {
			continue
		}
		buf.records[record.ID] = copyRecord(record)
	}
	return buf
}

// Record returns the buffered copy for a record id, or nil
func (b *EditBuffer) Record(recordID string) *shared.StudentGrade {
	return b.records[recordID]
}

// Records returns the buffered records keyed by record id
func (b *EditBuffer) Records() map[string]*shared.StudentGrade {
	return b.records
}

// ApplyEdit applies one textual cell edit and reports whether the value
// was accepted. The policy:
//   - a non-numeric value or one outside [0, 20] is rejected, keeping the
//     prior value;
//   - an empty value clears that component to 0;
//   - a unit whose three components are all 0 collapses to nil, i.e. "no
//     grade entered" rather than a zero grade on all three axes.
func (b *EditBuffer) ApplyEdit(recordID string, unit int, component, value string) bool {
	record, ok := b.records[recordID]
	if !ok {
		return false
	}
	current, err := record.Unit(unit)
	if err != nil {
		return false
	}

	if strings.TrimSpace(value) == "" {
		if current == nil {
			// Clearing an absent unit changes nothing.
			return true
		}
		updated := *current
		if !setComponent(&updated, component, 0) {
			return false
		}
		if updated.IsZero() {
			record.SetUnit(unit, nil)
		} else {
			record.SetUnit(unit, &updated)
		}
		return true
	}

	numValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || numValue < shared.MinGradeValue || numValue > shared.MaxGradeValue {
		return false
	}

	updated := shared.GradeComponent{}
	if current != nil {
		updated = *current
	}
	if !setComponent(&updated, component, numValue) {
		return false
	}
	record.SetUnit(unit, &updated)
	return true
}

func setComponent(c *shared.GradeComponent, component string, value float64) bool {
	switch component {
	case ComponentTareas:
		c.Tareas = value
	case ComponentConceptual:
		c.Conceptual = value
	case ComponentExamenes:
		c.Examenes = value
	default:
		return false
	}
	return true
}

func copyRecord(record *shared.StudentGrade) *shared.StudentGrade {
	out := &shared.StudentGrade{
		ID:        record.ID,
		StudentID: record.StudentID,
		CourseID:  record.CourseID,
	}
	for i, unit := range record.Units() {
		if unit == nil {
			continue
		}
		c := *unit
		out.SetUnit(i+1, &c)
	}
	return out
}
