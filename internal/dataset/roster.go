package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// Specializations recognized during roster preprocessing.
const (
	SpecBME  = "BME"
	SpecENTC = "ENTC"
)

// BuildRoster turns the registrar's raw text exports into roster entries.
// studentDataPath holds one tab-separated "rawIndex<TAB>name" line per
// student; bmeListPath (optional, may be empty) holds space-separated lines
// whose first token is the raw index of a BME student. Every raw index in
// the BME list is tagged BME, everyone else ENTC. The canonical display
// index is the raw index with its trailing check letter stripped.
func BuildRoster(studentDataPath, bmeListPath string) (map[string]domain.Student, error) {
	bme := map[string]bool{}
	if bmeListPath != "" {
		var err error
		bme, err = loadBMEList(bmeListPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(studentDataPath)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open student data %s", studentDataPath), err)
	}
	defer f.Close()

	roster := make(map[string]domain.Student)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		rawIdx, name, found := strings.Cut(text, "\t")
		if !found {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("student data %s line %d is not tab-separated", studentDataPath, line), nil)
		}

		spec := SpecENTC
		if bme[rawIdx] {
			spec = SpecBME
		}

		roster[rawIdx] = domain.Student{
			RawIndex:       rawIdx,
			DisplayIndex:   strings.TrimRight(rawIdx, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"),
			Name:           strings.TrimSpace(name),
			Specialization: spec,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read student data %s", studentDataPath), err)
	}

	return roster, nil
}

// loadBMEList reads the specialization list; the first space-separated token
// of each line is a raw student index.
func loadBMEList(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open specialization list %s", path), err)
	}
	defer f.Close()

	bme := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		bme[fields[0]] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read specialization list %s", path), err)
	}

	return bme, nil
}

// WriteRosterJSON writes processed roster entries as the student details
// file consumed by LoadRoster.
func WriteRosterJSON(path string, roster map[string]domain.Student) error {
	data, err := json.MarshalIndent(roster, "", "    ")
	if err != nil {
		return apperrors.NewParsingError("failed to encode roster", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write roster %s", path), err)
	}
	return nil
}
