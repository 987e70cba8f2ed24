// Command roster converts the registrar's raw text exports into the student
// details file the pipeline consumes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gradecli/internal/config"
	"gradecli/internal/dataset"
	"gradecli/internal/infrastructure"
)

func main() {
	inFile := flag.String("in", "", "raw student data file (one tab-separated \"index<TAB>name\" line per student)")
	bmeFile := flag.String("bme", "", "optional specialization list; first token per line is a BME student index")
	outFile := flag.String("out", "", "output path (defaults to data/student_details.json relative to executable)")
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: roster -in <student data file> [-bme <bme list>] [-out <path>]")
		os.Exit(2)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *outFile == "" {
		*outFile = paths.StudentsFile
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	cfg.Logging.Output = "console"

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		logger = slog.Default()
	}

	roster, err := dataset.BuildRoster(*inFile, *bmeFile)
	if err != nil {
		logger.Error("Failed to build roster", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := dataset.WriteRosterJSON(*outFile, roster); err != nil {
		logger.Error("Failed to write roster", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Roster written",
		slog.String("path", *outFile),
		slog.Int("students", len(roster)))
	fmt.Printf("Wrote %d students to %s\n", len(roster), *outFile)
}
