// Command processor runs the full pipeline for one or all configured
// semesters: it extracts grades from the result grids, applies corrections,
// ranks students, and exports the workbooks and the rankings CSV.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"gradecli/internal/config"
	"gradecli/internal/dataset"
	"gradecli/internal/exporter"
	"gradecli/internal/infrastructure"
	"gradecli/internal/services"
)

func main() {
	semesterFlag := flag.String("semester", "", "semester to process (file base name or semester name; prompts when omitted)")
	allFlag := flag.Bool("all", false, "process every configured semester and export cumulative standings")
	outDir := flag.String("out", "", "output directory for exported files (defaults to output/ relative to executable)")
	flag.Parse()

	// Optional .env next to the working directory; absence is fine.
	_ = godotenv.Load()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("processor.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *outDir == "" {
		*outDir = paths.OutputDir
	}

	logger.Info("Starting semester processing",
		slog.String("output_dir", *outDir),
		slog.Bool("all", *allFlag),
		slog.String("executable_dir", paths.ExecutableDir))

	svc, err := services.NewSemesterService(cfg, paths, logger)
	if err != nil {
		logger.Error("Failed to initialize pipeline", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selected, err := selectSemesters(svc, *semesterFlag, *allFlag)
	if err != nil {
		logger.Error("Semester selection failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(selected) == 0 {
		fmt.Println("Nothing to process.")
		return
	}

	exp := exporter.NewExporter(*outDir, logger)

	processed := make([]*services.ProcessedSemester, 0, len(selected))
	for _, path := range selected {
		p, err := svc.ProcessSemester(path)
		if err != nil {
			logger.Error("Processing failed",
				slog.String("config", path),
				slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", filepath.Base(path), err)
			os.Exit(1)
		}
		processed = append(processed, p)

		fmt.Printf("Processed %s: %d students across %d modules\n",
			p.Run.Semester.Name, len(p.Results), len(p.Run.AvailableModules))

		if err := exportSemester(exp, svc, p); err != nil {
			logger.Error("Export failed",
				slog.String("semester", p.Run.Semester.Name),
				slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", p.Run.Semester.Name, err)
			os.Exit(1)
		}
	}

	if *allFlag && len(processed) > 1 {
		if err := exportCumulative(exp, svc, processed); err != nil {
			logger.Error("Cumulative export failed", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "Error exporting cumulative standings: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Exported cumulative standings")
	}

	logger.Info("Processing complete", slog.Int("semesters", len(processed)))
	fmt.Printf("Done. Exported files are in %s\n", *outDir)
}

// selectSemesters resolves which semester config files to process. With -all
// every configured file is taken; with -semester the selector is resolved;
// otherwise a single configured semester is taken silently and multiple ones
// prompt for a choice.
func selectSemesters(svc *services.SemesterService, selector string, all bool) ([]string, error) {
	paths, err := svc.ListSemesters()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		fmt.Println("No semester configurations found.")
		return nil, nil
	}

	if all {
		return paths, nil
	}
	if selector != "" {
		path, err := svc.FindSemester(selector)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	if len(paths) == 1 {
		return paths, nil
	}

	return promptSemester(paths)
}

// promptSemester asks the user to pick one of the configured semesters.
func promptSemester(paths []string) ([]string, error) {
	fmt.Println("Available semesters:")
	for i, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if semester, err := dataset.LoadSemester(path); err == nil {
			name = semester.Name
		}
		fmt.Printf("  %d) %s\n", i+1, name)
	}
	fmt.Print("Select a semester (or press Enter to cancel): ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(paths) {
		return nil, fmt.Errorf("invalid selection %q", line)
	}
	return []string{paths[choice-1]}, nil
}

// exportSemester writes both workbooks and the rankings CSV for one run.
func exportSemester(exp *exporter.Exporter, svc *services.SemesterService, p *services.ProcessedSemester) error {
	input := exporter.Input{
		Run:     p.Run,
		Results: p.Results,
		Roster:  svc.Roster(),
		Grades:  svc.Grades(),
		RunID:   p.RunID,
	}

	if _, err := exp.ExportWorkbooks(input); err != nil {
		return err
	}
	_, err := exp.ExportRankingsCSV(input)
	return err
}

// exportCumulative writes one CSV of every student's standing across the
// processed semesters, ordered by cumulative GPA.
func exportCumulative(exp *exporter.Exporter, svc *services.SemesterService, processed []*services.ProcessedSemester) error {
	type standing struct {
		index int
		cgpa  float64
	}

	seen := make(map[int]bool)
	standings := make([]standing, 0)
	for _, p := range processed {
		for _, res := range p.Results {
			if seen[res.Index] {
				continue
			}
			seen[res.Index] = true
			standings = append(standings, standing{
				index: res.Index,
				cgpa:  svc.CumulativeGPA(processed, res.Index),
			})
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].cgpa != standings[j].cgpa {
			return standings[i].cgpa > standings[j].cgpa
		}
		return standings[i].index < standings[j].index
	})

	roster := svc.Roster()
	records := make([][]string, 0, len(standings))
	for i, s := range standings {
		displayIndex := strconv.Itoa(s.index)
		name := "Unknown"
		if student, ok := roster.Lookup(s.index); ok {
			displayIndex = student.DisplayIndex
			name = student.Name
		}
		records = append(records, []string{
			strconv.Itoa(i + 1),
			displayIndex,
			name,
			strconv.FormatFloat(s.cgpa, 'f', 3, 64),
		})
	}

	_, err := exp.WriteCSV("Cumulative Standings.csv", exporter.WriteOptions{
		Headers:   []string{"Position", "Index", "Name", "CGPA"},
		Records:   records,
		BOMPrefix: true,
	})
	return err
}
