// Command sgpacalc prints one student's module-by-module GPA breakdown for a
// semester: grade, credits, grade value, and weighted points per module,
// followed by the resulting SGPA on both scales.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gradecli/internal/config"
	"gradecli/internal/infrastructure"
	"gradecli/internal/services"
	"gradecli/pkg/contracts/domain"
)

func main() {
	semesterFlag := flag.String("semester", "", "semester to inspect (file base name or semester name)")
	indexFlag := flag.String("index", "", "student index number")
	flag.Parse()

	_ = godotenv.Load()

	if *semesterFlag == "" || *indexFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: sgpacalc -semester <name> -index <student index>")
		os.Exit(2)
	}

	index, err := strconv.Atoi(*indexFlag)
	if err != nil || index <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid student index %q\n", *indexFlag)
		os.Exit(2)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = paths.GetLogPath("sgpacalc.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	svc, err := services.NewSemesterService(cfg, paths, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	configPath, err := svc.FindSemester(*semesterFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p, err := svc.ProcessSemester(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printBreakdown(svc, p, index)
}

func printBreakdown(svc *services.SemesterService, p *services.ProcessedSemester, index int) {
	record, ok := p.Run.Records[index]
	if !ok {
		fmt.Printf("No grades found for %d in %s\n", index, p.Run.Semester.Name)
		return
	}

	name := "Unknown"
	if student, found := svc.Roster().Lookup(index); found {
		name = student.Name
	}
	fmt.Printf("%s (%d), %s\n\n", name, index, p.Run.Semester.Name)
	fmt.Printf("%-10s %-7s %-8s %-8s %s\n", "Module", "Grade", "Credits", "Value", "Points")

	grades := svc.Grades()
	for _, code := range p.Run.AvailableModules {
		grade, ok := record.Modules[code]
		if !ok {
			continue
		}
		stats := p.Run.ModuleStats[code]

		value, known := grades[grade]
		if !known {
			fmt.Printf("%-10s %-7s %-8d %-8s %s\n", code, grade, stats.Credits, "-", "Ignored")
			continue
		}
		points := float64(stats.Credits) * value.On(domain.Scale40)
		fmt.Printf("%-10s %-7s %-8d %-8.2f %.2f\n", code, grade, stats.Credits, value.On(domain.Scale40), points)
	}

	for _, res := range p.Results {
		if res.Index != index {
			continue
		}
		fmt.Printf("\nSGPA (4.0): %.3f\n", res.GPA40)
		fmt.Printf("SGPA (4.2): %.3f\n", res.GPA42)
		fmt.Printf("Max possible SGPA: %.3f\n", res.MaxPossibleGPA)
		fmt.Printf("Rank: %d of %d\n", res.Rank, len(p.Results))
		break
	}
}
