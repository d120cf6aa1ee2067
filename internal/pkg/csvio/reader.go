// Package csvio reads and writes the tabular exchange format of the
// allocation service. An input file carries one student per row:
//
//	Roll,Name,Email,CGPA,<Faculty 1>,<Faculty 2>,...
//
// where every column after CGPA names a faculty and holds the preference
// rank the student gave it. Parse failures abort at this boundary; the
// allocation core itself only ever sees well-typed records.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yigit/facalloc/internal/app/allocation"
)

// header columns that precede the faculty columns, in order.
var baseColumns = []string{"Roll", "Name", "Email", "CGPA"}

// Dataset is the decoded content of one input file.
type Dataset struct {
	Students []allocation.Student
	Faculty  []string
}

// Read decodes a preference CSV into students and the canonical faculty
// list. The faculty list preserves the column order of the file, which the
// engine later uses as its deterministic tie-break order.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if err := checkHeader(header); err != nil {
		return nil, err
	}

	faculty := make([]string, 0, len(header)-len(baseColumns))
	for _, col := range header[len(baseColumns):] {
		name := strings.TrimSpace(col)
		if name == "" {
			return nil, fmt.Errorf("faculty column %d has an empty name", len(faculty)+1)
		}
		faculty = append(faculty, name)
	}

	var students []allocation.Student
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		student, err := parseRow(record, faculty)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		students = append(students, student)
	}

	return &Dataset{Students: students, Faculty: faculty}, nil
}

func checkHeader(header []string) error {
	if len(header) < len(baseColumns) {
		return fmt.Errorf("header must start with %s", strings.Join(baseColumns, ","))
	}
	for i, want := range baseColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("header column %d must be %q, got %q", i+1, want, header[i])
		}
	}
	return nil
}

func parseRow(record []string, faculty []string) (allocation.Student, error) {
	var s allocation.Student

	if len(record) != len(baseColumns)+len(faculty) {
		return s, fmt.Errorf("expected %d columns, got %d", len(baseColumns)+len(faculty), len(record))
	}

	s.Roll = strings.TrimSpace(record[0])
	if s.Roll == "" {
		return s, fmt.Errorf("roll number is empty")
	}
	s.Name = strings.TrimSpace(record[1])
	s.Email = strings.TrimSpace(record[2])

	merit, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return s, fmt.Errorf("invalid CGPA %q", record[3])
	}
	s.Merit = merit

	s.Preferences = make(map[string]int, len(faculty))
	for i, f := range faculty {
		cell := strings.TrimSpace(record[len(baseColumns)+i])
		if cell == "" {
			// Missing preference: the engine treats the absence as the
			// worst possible rank.
			continue
		}
		rank, err := strconv.Atoi(cell)
		if err != nil {
			return s, fmt.Errorf("invalid preference %q for %s", cell, f)
		}
		s.Preferences[f] = rank
	}

	return s, nil
}
