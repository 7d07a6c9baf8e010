package shared

import (
	"strings"
	"testing"
)

func TestFormatFullName(t *testing.T) {
	got := FormatFullName(" Ana María ", "Pérez", "Rojas")
	want := "Pérez Rojas, Ana María"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestGenerateStudentID(t *testing.T) {
	got := GenerateStudentID("Ana María", "Pérez", "Rojas", 2024)
	want := "AAnaMaríaPérezR2024"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestGenerateTeacherID(t *testing.T) {
	id := GenerateTeacherID("Carlos", "Méndez", "Rodríguez")
	if !strings.HasPrefix(id, "CMéndezR") {
		t.Errorf("Expected prefix CMéndezR, got %q", id)
	}
	if len(id) != len("CMéndezR")+4 {
		t.Errorf("Expected a four-digit suffix, got %q", id)
	}
}

func TestGenerateEmail(t *testing.T) {
	if got := GenerateEmail("APerezR2024"); got != "APerezR2024@escuela.com" {
		t.Errorf("Unexpected email: %q", got)
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "clave1234", false},
		{"too short", "abc1", true},
		{"letters only", "contraseña", true},
		{"digits only", "12345678", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %t", tc.password, err, tc.wantErr)
			}
		})
	}
}

func TestNewStudent(t *testing.T) {
	s, err := NewStudent("Ana", "Pérez", "Rojas", "g1", SectionA, 2024)
	if err != nil {
		t.Fatalf("NewStudent failed: %v", err)
	}
	if s.ID != "AAnaPérezR2024" {
		t.Errorf("Unexpected id: %q", s.ID)
	}
	if s.FullName != "Pérez Rojas, Ana" {
		t.Errorf("Unexpected full name: %q", s.FullName)
	}
	if s.Email != s.ID+"@escuela.com" {
		t.Errorf("Unexpected email: %q", s.Email)
	}
	if s.Role != RoleStudent {
		t.Errorf("Unexpected role: %q", s.Role)
	}
}

func TestNewStudent_Rejections(t *testing.T) {
	if _, err := NewStudent("Ana", "Pérez", "Rojas", "g9", SectionA, 2024); err == nil {
		t.Error("Expected rejection for unknown grade-level")
	}
	if _, err := NewStudent("Ana", "Pérez", "Rojas", "g1", "C", 2024); err == nil {
		t.Error("Expected rejection for unknown section")
	}
	if _, err := NewStudent("", "Pérez", "Rojas", "g1", SectionA, 2024); err == nil {
		t.Error("Expected rejection for missing first name")
	}
}

func TestNewTeacher_RequiresSpecialty(t *testing.T) {
	if _, err := NewTeacher("Carlos", "Méndez", "Rodríguez", ""); err == nil {
		t.Error("Expected rejection for missing specialty")
	}
}

func TestNewPrincipal(t *testing.T) {
	for _, role := range []string{RoleStudent, RoleTeacher, RoleAdmin, RoleSupport} {
		if _, err := NewPrincipal("u1", role, "Nombre"); err != nil {
			t.Errorf("Expected role %q to be accepted: %v", role, err)
		}
	}
	if _, err := NewPrincipal("u1", "auditor", "Nombre"); err == nil {
		t.Error("Expected rejection for role outside the closed set")
	}
	if _, err := NewPrincipal("u1", RoleAdmin, ""); err == nil {
		t.Error("Expected rejection for missing name")
	}
}

func TestNewGradeComponent_Bounds(t *testing.T) {
	if _, err := NewGradeComponent(0, 0, 20); err != nil {
		t.Errorf("Boundary values should be accepted: %v", err)
	}
	if _, err := NewGradeComponent(-1, 0, 0); err == nil {
		t.Error("Expected rejection below 0")
	}
	if _, err := NewGradeComponent(0, 21, 0); err == nil {
		t.Error("Expected rejection above 20")
	}
}

func TestGradeLevelName(t *testing.T) {
	if got := GradeLevelName("g3"); got != "3° Secundaria" {
		t.Errorf("Unexpected name: %q", got)
	}
	if got := GradeLevelName("g9"); got != "Grado no encontrado" {
		t.Errorf("Unexpected fallback: %q", got)
	}
}

func TestBlankGradeRecord(t *testing.T) {
	g := BlankGradeRecord("s1", "c1")
	if g.ID != "s1-c1" {
		t.Errorf("Unexpected record id: %q", g.ID)
	}
	for i, unit := range g.Units() {
		if unit != nil {
			t.Errorf("Unit %d of a blank record should be nil", i+1)
		}
	}
}

func TestGradeComponentIsZero(t *testing.T) {
	if !(GradeComponent{}).IsZero() {
		t.Error("Zero-valued component should report IsZero")
	}
	if (GradeComponent{Examenes: 0.5}).IsZero() {
		t.Error("Non-zero component should not report IsZero")
	}
}
