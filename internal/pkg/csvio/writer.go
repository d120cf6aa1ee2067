package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yigit/facalloc/internal/app/allocation"
)

// AllocationRow is one line of the exported allocation table.
type AllocationRow struct {
	Roll      string
	Name      string
	Email     string
	Merit     float64
	Allocated string
}

// WriteAllocations writes the allocation table in the same column style as
// the input format, with the assigned faculty appended.
func WriteAllocations(w io.Writer, rows []AllocationRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Roll", "Name", "Email", "CGPA", "Allocated"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Roll,
			row.Name,
			row.Email,
			strconv.FormatFloat(row.Merit, 'f', -1, 64),
			row.Allocated,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Roll, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteHistogram writes a faculty-by-rank count table. counts follows the
// layout of the allocation package histograms: counts[i][r-1] is the
// number of students for faculty[i] at rank r.
func WriteHistogram(w io.Writer, faculty []string, counts [][]int) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(faculty)+1)
	header = append(header, "Fac")
	for r := 1; r <= len(faculty); r++ {
		header = append(header, fmt.Sprintf("Count Pref %d", r))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, f := range faculty {
		record := make([]string, 0, len(faculty)+1)
		record = append(record, f)
		for _, c := range counts[i] {
			record = append(record, strconv.Itoa(c))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", f, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RowsFromResult builds the export table for a finished run, one row per
// student in the original input order.
func RowsFromResult(students []allocation.Student, result *allocation.Result) []AllocationRow {
	rows := make([]AllocationRow, 0, len(students))
	for _, s := range students {
		assigned, ok := result.Assignments[s.Roll]
		if !ok {
			assigned = allocation.Unallocated
		}
		rows = append(rows, AllocationRow{
			Roll:      s.Roll,
			Name:      s.Name,
			Email:     s.Email,
			Merit:     s.Merit,
			Allocated: assigned,
		})
	}
	return rows
}
