package allocation

import (
	"fmt"
	"math"
)

// Engine runs the merit-ordered greedy allocation: students are sorted by
// merit, partitioned into cohorts of faculty-count size, and within each
// cohort every faculty is handed to at most one student, best-ranked
// students choosing first.
//
// The engine holds its inputs read-only; Allocate can be called any number
// of times and always produces a fresh, identical Result.
type Engine struct {
	students []Student
	faculty  []string
}

// NewEngine validates the hard preconditions and returns a ready engine.
// Empty student sets, empty faculty lists and duplicate rolls are rejected
// here; soft input problems (odd ranks, duplicate ranks) are reported by
// Validate and do not block allocation.
func NewEngine(students []Student, faculty []string) (*Engine, error) {
	if len(students) == 0 {
		return nil, fmt.Errorf("no students to allocate")
	}
	if len(faculty) == 0 {
		return nil, fmt.Errorf("faculty list is empty")
	}

	seen := make(map[string]struct{}, len(students))
	for _, s := range students {
		if _, dup := seen[s.Roll]; dup {
			return nil, fmt.Errorf("duplicate roll number %q", s.Roll)
		}
		seen[s.Roll] = struct{}{}
	}

	return &Engine{students: students, faculty: faculty}, nil
}

// Faculty returns the canonical faculty list the engine was built with.
func (e *Engine) Faculty() []string {
	return e.faculty
}

// Students returns the input student records in their original order.
func (e *Engine) Students() []Student {
	return e.students
}

// Allocate performs the full allocation pass and returns the result.
//
// Each cohort starts with the complete faculty pool. Students are served
// strictly in merit order, so a student's outcome depends only on their
// own preferences and on which faculty remain after every higher-merit
// student in the same cohort has chosen. Ties on equal best rank break by
// position in the canonical faculty list, which keeps the whole run
// deterministic.
func (e *Engine) Allocate() *Result {
	sorted := SortByMerit(e.students)

	// Preconditions checked in NewEngine, BuildCohorts cannot fail here.
	cohorts, _ := BuildCohorts(sorted, len(e.faculty))

	result := &Result{
		Assignments: make(map[string]string, len(sorted)),
		Cohorts:     make([][]string, len(cohorts)),
	}

	for i, cohort := range cohorts {
		rolls := make([]string, len(cohort))

		// Pool local to this cohort, kept in canonical list order.
		available := make([]string, len(e.faculty))
		copy(available, e.faculty)

		for j, student := range cohort {
			rolls[j] = student.Roll

			pick := bestAvailable(student, available, len(e.faculty))
			if pick < 0 {
				// Pool exhausted; unreachable while cohort size <= F but
				// kept so malformed input degrades to a sentinel instead
				// of a panic.
				result.Assignments[student.Roll] = Unallocated
				continue
			}

			result.Assignments[student.Roll] = available[pick]
			available = append(available[:pick], available[pick+1:]...)
		}

		result.Cohorts[i] = rolls
	}

	return result
}

// bestAvailable returns the index into available of the faculty the
// student ranks best, or -1 when the pool is empty. Ranks outside 1..F and
// missing entries count as infinitely bad, but an all-unranked student
// still takes the first faculty in canonical order rather than going
// unallocated.
func bestAvailable(s Student, available []string, facultyCount int) int {
	best := -1
	bestRank := math.MaxInt

	for i, faculty := range available {
		rank, ok := s.Preferences[faculty]
		if !ok || rank < 1 || rank > facultyCount {
			rank = math.MaxInt
		}
		if best < 0 || rank < bestRank {
			best = i
			bestRank = rank
		}
	}

	return best
}
