// ============================================================================
// backend/cmd/seeder/main.go
// Seeds the store with the demo roster and pseudo-random complete grades
// ============================================================================

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"sga_secundaria/backend/internal/grades"
	"sga_secundaria/backend/internal/shared"
	"sga_secundaria/backend/internal/store"
)

// teacherSeed mirrors the demo faculty roster
type teacherSeed struct {
	FirstName string
	Paternal  string
	Maternal  string
	Specialty string
}

var teacherSeeds = []teacherSeed{
	{"Carlos", "Méndez", "Rodríguez", "Matemáticas"},
	{"María", "González", "Silva", "Comunicación"},
	{"Juan", "Pérez", "Torres", "Ciencias"},
	{"Ana", "Rodríguez", "Martínez", "Historia"},
	{"Luis", "Torres", "Vargas", "Inglés"},
	{"Carmen", "Silva", "Ramos", "Educación Física"},
	{"Roberto", "Díaz", "Castro", "Arte"},
}

// subjectNames are the seven courses offered in every grade-level, each
// owned by the teacher at the same index
var subjectNames = []string{
	"Matemática",
	"Comunicación",
	"Ciencia y Tecnología",
	"Ciencias Sociales",
	"Inglés",
	"Educación Física",
	"Arte y Cultura",
}

// studentSeed mirrors the demo student roster per grade-level section
type studentSeed struct {
	FirstName string
	Paternal  string
	Maternal  string
}

var studentSeeds = []studentSeed{
	{"Ana", "Árbol", "Quispe"},
	{"Bea", "Zapata", "Flores"},
	{"Diego", "Huamán", "Rojas"},
	{"Lucía", "Fernández", "Paredes"},
	{"Mateo", "Castillo", "Núñez"},
	{"Valeria", "Ñaupari", "Gómez"},
}

const demoPassword = "escuela2024"

func main() {
	seed := flag.Int64("seed", 42, "pseudo-random seed for generated grades")
	envFile := flag.String("env", ".env", "path to the .env file")
	flag.Parse()

	log.Println("Starting demo data seeder...")

	if err := shared.LoadEnv(*envFile); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := shared.LoadAppConfig("seeder")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	kv, closeStore, err := store.Open(&cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	ctx := context.Background()
	reg := store.NewRegistry(kv)
	gradebook := grades.NewService(reg)
	rng := rand.New(rand.NewSource(*seed))

	hash, err := shared.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	// Teachers first so that courses can reference their owners.
	teacherIDs := make([]string, 0, len(teacherSeeds))
	for _, ts := range teacherSeeds {
		teacher, err := shared.NewTeacher(ts.FirstName, ts.Paternal, ts.Maternal, ts.Specialty)
		if err != nil {
			log.Fatalf("Failed to build teacher %s: %v", ts.Paternal, err)
		}
		teacher.PasswordHash = hash
		if err := reg.PutTeacher(ctx, teacher); err != nil {
			log.Fatalf("Failed to store teacher %s: %v", teacher.ID, err)
		}
		teacherIDs = append(teacherIDs, teacher.ID)
	}
	log.Printf("Seeded %d teachers", len(teacherIDs))

	// Courses: every grade-level offers the same seven subjects.
	courseCount := 0
	for _, level := range shared.GradeLevels {
		for i, name := range subjectNames {
			courseCount++
			course, err := shared.NewCourse(fmt.Sprintf("c%d", courseCount), name, level.ID, teacherIDs[i])
			if err != nil {
				log.Fatalf("Failed to build course %s: %v", name, err)
			}
			if err := reg.PutCourse(ctx, course); err != nil {
				log.Fatalf("Failed to store course %s: %v", course.ID, err)
			}
		}
	}
	log.Printf("Seeded %d courses", courseCount)

	// Students split across sections A and B, enrolled through the
	// gradebook so each gets its grade-record fan-out.
	studentCount := 0
	for _, level := range shared.GradeLevels {
		for i, ss := range studentSeeds {
			section := shared.SectionA
			if i%2 == 1 {
				section = shared.SectionB
			}
			firstName := fmt.Sprintf("%s %s", ss.FirstName, level.Level)
			student, err := shared.NewStudent(firstName, ss.Paternal, ss.Maternal, level.ID, section, 2024)
			if err != nil {
				log.Fatalf("Failed to build student %s: %v", ss.Paternal, err)
			}
			if err := gradebook.EnrollStudent(ctx, student, demoPassword); err != nil {
				log.Fatalf("Failed to enroll student %s: %v", student.ID, err)
			}
			seedGrades(ctx, reg, rng, student)
			studentCount++
		}
	}
	log.Printf("Seeded %d students", studentCount)

	log.Println("Demo data seeding complete.")
}

// seedGrades fills every record of the student with four complete units,
// harder units drawing from a slightly wider range
func seedGrades(ctx context.Context, reg *store.Registry, rng *rand.Rand, student *shared.Student) {
	records, err := reg.GradesByStudent(ctx, student.ID)
	if err != nil {
		log.Fatalf("Failed to load grade records for %s: %v", student.ID, err)
	}
	floors := [shared.UnitsPerCourse]int{12, 11, 10, 10}
	for _, record := range records {
		for unit := 1; unit <= shared.UnitsPerCourse; unit++ {
			record.SetUnit(unit, &shared.GradeComponent{
				Tareas:     randomGrade(rng, floors[unit-1]),
				Conceptual: randomGrade(rng, floors[unit-1]),
				Examenes:   randomGrade(rng, floors[unit-1]),
			})
		}
		if err := reg.PutGrade(ctx, record); err != nil {
			log.Fatalf("Failed to store grade record %s: %v", record.ID, err)
		}
	}
}

// randomGrade picks an integer grade in [floor, 20]
func randomGrade(rng *rand.Rand, floor int) float64 {
	return float64(floor + rng.Intn(21-floor))
}
