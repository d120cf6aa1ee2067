package allocation

import "fmt"

// Report is the structured outcome of input validation. Issues block
// allocation; Warnings do not (the engine falls back to worst-rank
// semantics for any rank it cannot interpret).
type Report struct {
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues"`
	Warnings    []string `json:"warnings"`
	NumStudents int      `json:"numStudents"`
	NumFaculty  int      `json:"numFaculty"`
}

// Validate inspects a dataset for consistency and returns a report with a
// hard/soft split. It never fails: callers decide from Report.Valid
// whether to proceed.
func Validate(students []Student, faculty []string) Report {
	report := Report{
		Issues:      []string{},
		Warnings:    []string{},
		NumStudents: len(students),
		NumFaculty:  len(faculty),
	}

	if len(students) == 0 {
		report.Issues = append(report.Issues, "no students found in input")
	}
	if len(faculty) == 0 {
		report.Issues = append(report.Issues, "no faculty found in input")
	}

	seen := make(map[string]struct{}, len(students))
	for _, s := range students {
		if _, dup := seen[s.Roll]; dup {
			report.Issues = append(report.Issues, fmt.Sprintf("duplicate roll number %s", s.Roll))
			continue
		}
		seen[s.Roll] = struct{}{}
	}

	for _, s := range students {
		rankSeen := make(map[int]bool, len(s.Preferences))
		duplicated := false

		// Walk the canonical list so warning order is stable across runs.
		for _, f := range faculty {
			rank, ok := s.Preferences[f]
			if !ok {
				continue
			}
			if rank < 1 || rank > len(faculty) {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("student %s has invalid preference %d for %s", s.Roll, rank, f))
			}
			if rankSeen[rank] {
				duplicated = true
			}
			rankSeen[rank] = true
		}

		if s.Merit < 0 || s.Merit > 10 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("student %s has unusual merit score: %g", s.Roll, s.Merit))
		}

		if duplicated {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("student %s has duplicate preference ranks", s.Roll))
		}
	}

	report.Valid = len(report.Issues) == 0
	return report
}
