package allocation

// Unallocated is the sentinel assigned to a student no faculty could be
// matched with. It only appears when the faculty pool is exhausted, which
// cannot happen for well-formed input (cohort size never exceeds the
// faculty count).
const Unallocated = "UNALLOCATED"

// Student is an immutable input record for the allocation engine.
// Preferences maps a faculty name to the rank the student gave it
// (1 = most preferred). A faculty missing from the map, or carrying a
// rank outside 1..F, is treated as worse than any stated rank.
type Student struct {
	Roll        string         `json:"roll"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Merit       float64        `json:"merit"`
	Preferences map[string]int `json:"preferences"`
}

// Result is the output of a single allocation run. The engine never writes
// back into the Student records it was given; everything a caller needs to
// know about the outcome lives here.
type Result struct {
	// Assignments maps every student roll to a faculty name, or to the
	// Unallocated sentinel. Exactly one entry per student.
	Assignments map[string]string `json:"assignments"`

	// Cohorts holds the rolls of each cohort in merit order. Cohort 0 is
	// processed first and therefore chose from the full faculty pool.
	Cohorts [][]string `json:"cohorts"`
}

// CohortOf returns the index of the cohort containing roll, or -1 if the
// roll was not part of the run.
func (r *Result) CohortOf(roll string) int {
	for i, cohort := range r.Cohorts {
		for _, member := range cohort {
			if member == roll {
				return i
			}
		}
	}
	return -1
}

// AchievedRank returns the preference rank the student gave the faculty
// they were assigned, or 0 when the student is unallocated or never ranked
// that faculty.
func (r *Result) AchievedRank(s Student) int {
	assigned, ok := r.Assignments[s.Roll]
	if !ok || assigned == Unallocated {
		return 0
	}
	return s.Preferences[assigned]
}
