package domain

// ModuleInfo is one module entry of a semester configuration.
type ModuleInfo struct {
	Code    string `json:"code"`
	Credits int    `json:"credits" validate:"required,min=1"`
}

// SemesterConfig describes one semester's examined modules.
type SemesterConfig struct {
	Name    string                `json:"semester_name" validate:"required"`
	Modules map[string]ModuleInfo `json:"modules" validate:"required,min=1,dive"`
}

// TotalCredits sums the credits of every configured module.
func (c *SemesterConfig) TotalCredits() int {
	total := 0
	for _, m := range c.Modules {
		total += m.Credits
	}
	return total
}

// ModuleResult accumulates the extracted grades of one module.
type ModuleResult struct {
	Code        string         `json:"code"`
	Credits     int            `json:"credits"`
	Grades      map[int]string `json:"grades"`
	GradeCounts map[string]int `json:"grade_counts"`
}

// Corrections maps module code → student index string → replacement grade.
// Applied after extraction; the student index string must canonicalize to a
// roster member or the correction is skipped.
type Corrections map[string]map[string]string

// StudentRecord is the per-student view built while merging module results.
type StudentRecord struct {
	Index   int               `json:"index"`
	Name    string            `json:"name,omitempty"`
	Modules map[string]string `json:"modules"`
}

// GpaResult holds the derived figures for one student within a processed
// semester. Immutable once computed for a given input snapshot.
type GpaResult struct {
	Index          int     `json:"index"`
	GPA40          float64 `json:"gpa_4_0"`
	GPA42          float64 `json:"gpa_4_2"`
	MaxPossibleGPA float64 `json:"max_possible_gpa"`
	Rank           int     `json:"rank"`
	Rank42         int     `json:"rank_4_2"`
	ModuleCount    int     `json:"module_count"`
}

// SemesterRun is the consumable outcome of processing one semester: merged
// student records, per-module statistics, and the modules a result sheet was
// actually found for, in configuration order.
type SemesterRun struct {
	Semester         SemesterConfig
	Records          map[int]*StudentRecord
	ModuleStats      map[string]*ModuleResult
	AvailableModules []string
}
