package allocation

import (
	"fmt"
	"sort"
)

// SortByMerit returns a copy of students ordered by merit descending,
// breaking ties by roll ascending. The tie-break keeps the order total and
// stable, so re-running on identical input always yields the same order.
func SortByMerit(students []Student) []Student {
	sorted := make([]Student, len(students))
	copy(sorted, students)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Merit != sorted[j].Merit {
			return sorted[i].Merit > sorted[j].Merit
		}
		return sorted[i].Roll < sorted[j].Roll
	})

	return sorted
}

// BuildCohorts partitions an already merit-sorted student sequence into
// contiguous cohorts of size facultyCount; the last cohort takes the
// remainder. Cohort order matters: earlier cohorts pick from a fresh
// faculty pool before later ones exist at all.
func BuildCohorts(sorted []Student, facultyCount int) ([][]Student, error) {
	if facultyCount < 1 {
		return nil, fmt.Errorf("faculty count must be at least 1, got %d", facultyCount)
	}

	cohorts := make([][]Student, 0, (len(sorted)+facultyCount-1)/facultyCount)
	for start := 0; start < len(sorted); start += facultyCount {
		end := start + facultyCount
		if end > len(sorted) {
			end = len(sorted)
		}
		cohorts = append(cohorts, sorted[start:end])
	}

	return cohorts, nil
}
