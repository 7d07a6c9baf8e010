// ============================================================================
// backend/cmd/reports/main.go
// Prints the merit ranking and summary of a grade-level section
// ============================================================================

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"sga_secundaria/backend/internal/ranking"
	"sga_secundaria/backend/internal/shared"
	"sga_secundaria/backend/internal/store"
)

func main() {
	gradeID := flag.String("grade", "g1", "grade-level id (g1..g5)")
	section := flag.String("section", shared.SectionA, "section label (A or B)")
	envFile := flag.String("env", ".env", "path to the .env file")
	flag.Parse()

	if !shared.IsValidGradeLevel(*gradeID) {
		log.Fatalf("Unknown grade-level: %q", *gradeID)
	}
	if !shared.IsValidSection(*section) {
		log.Fatalf("Unknown section: %q", *section)
	}

	if err := shared.LoadEnv(*envFile); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := shared.LoadAppConfig("reports")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	kv, closeStore, err := store.Open(&cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	ctx := context.Background()
	svc := ranking.NewService(store.NewRegistry(kv))

	ranked, err := svc.SectionRanking(ctx, *gradeID, *section)
	if err != nil {
		log.Fatalf("Failed to compute section ranking: %v", err)
	}

	fmt.Printf("Orden de mérito — %s, Sección %s\n\n", shared.GradeLevelName(*gradeID), *section)

	if len(ranked) == 0 {
		fmt.Println("Sin datos de calificaciones para esta sección.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Puesto\tEstudiante\tPromedio")
	for _, row := range ranked {
		fmt.Fprintf(w, "%d\t%s\t%.1f\n", row.Rank, row.Student.FullName, row.Average)
	}
	w.Flush()

	summary, err := svc.Summary(ctx, *gradeID, *section)
	if err != nil {
		log.Fatalf("Failed to compute section summary: %v", err)
	}
	fmt.Printf("\nEstudiantes con promedio: %d  Media: %.1f  Mín: %.1f  Máx: %.1f\n",
		summary.Ranked, summary.Mean, summary.Min, summary.Max)
}
