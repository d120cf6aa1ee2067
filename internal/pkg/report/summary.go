// Package report renders human-readable summaries of allocation runs.
package report

import (
	"fmt"
	"strings"

	"github.com/yigit/facalloc/internal/app/allocation"
)

// Summary renders a plain-text report of a run's metrics, suitable for a
// terminal or a text download. It is a pure function of the metrics
// record.
func Summary(m allocation.Metrics) string {
	var b strings.Builder

	b.WriteString("FACULTY ALLOCATION SUMMARY REPORT\n")
	b.WriteString("=================================\n\n")

	b.WriteString("Basic statistics\n")
	fmt.Fprintf(&b, "  Total students:            %d\n", m.TotalStudents)
	fmt.Fprintf(&b, "  Total faculty:             %d\n", m.TotalFaculty)
	fmt.Fprintf(&b, "  Number of cohorts:         %d\n", m.CohortCount)
	fmt.Fprintf(&b, "  Students allocated:        %d\n", m.AllocatedStudents)
	b.WriteString("\n")

	b.WriteString("Allocation quality\n")
	fmt.Fprintf(&b, "  Average preference rank:   %.2f (lower is better, 1 = first choice)\n",
		m.AveragePreferenceRank)
	b.WriteString("\n")

	b.WriteString("Faculty distribution\n")
	fmt.Fprintf(&b, "  Min students per faculty:  %d\n", m.MinLoad)
	fmt.Fprintf(&b, "  Max students per faculty:  %d\n", m.MaxLoad)
	b.WriteString("\n")

	b.WriteString("Allocation success\n")
	if m.AllocatedStudents > 0 {
		fmt.Fprintf(&b, "  Got 1st preference:        %d (%.1f%%)\n",
			m.FirstChoice, percent(m.FirstChoice, m.AllocatedStudents))
		fmt.Fprintf(&b, "  Got top-2 preference:      %d (%.1f%%)\n",
			m.TopTwo, percent(m.TopTwo, m.AllocatedStudents))
		fmt.Fprintf(&b, "  Got top-3 preference:      %d (%.1f%%)\n",
			m.TopThree, percent(m.TopThree, m.AllocatedStudents))
	} else {
		b.WriteString("  No students were allocated.\n")
	}

	return b.String()
}

func percent(part, total int) float64 {
	return float64(part) * 100 / float64(total)
}
