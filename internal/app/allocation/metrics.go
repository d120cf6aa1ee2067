package allocation

// Metrics summarizes a finished allocation run. All fields derive from the
// inputs plus the result mapping; recomputing them at any time yields the
// same values.
type Metrics struct {
	TotalStudents         int            `json:"totalStudents"`
	TotalFaculty          int            `json:"totalFaculty"`
	CohortCount           int            `json:"cohortCount"`
	AllocatedStudents     int            `json:"allocatedStudents"`
	AveragePreferenceRank float64        `json:"averagePreferenceRank"`
	FacultyLoad           map[string]int `json:"facultyLoad"`
	MinLoad               int            `json:"minLoad"`
	MaxLoad               int            `json:"maxLoad"`
	FirstChoice           int            `json:"firstChoice"`
	TopTwo                int            `json:"topTwo"`
	TopThree              int            `json:"topThree"`
}

// PreferenceHistogram counts, for every faculty and every rank 1..F, how
// many students gave that faculty that rank in their original preferences.
// It looks at the whole population regardless of allocation outcome.
// counts[i][r-1] is the number of students ranking faculty[i] at rank r.
func PreferenceHistogram(students []Student, faculty []string) [][]int {
	counts := emptyHistogram(len(faculty))

	for _, s := range students {
		for i, f := range faculty {
			rank, ok := s.Preferences[f]
			if ok && rank >= 1 && rank <= len(faculty) {
				counts[i][rank-1]++
			}
		}
	}

	return counts
}

// OutcomeHistogram counts, for every faculty, the preference ranks
// achieved by the students actually allocated to it. Students allocated to
// a faculty they never ranked, and unallocated students, contribute to no
// cell.
func OutcomeHistogram(students []Student, faculty []string, result *Result) [][]int {
	counts := emptyHistogram(len(faculty))

	index := make(map[string]int, len(faculty))
	for i, f := range faculty {
		index[f] = i
	}

	for _, s := range students {
		assigned, ok := result.Assignments[s.Roll]
		if !ok || assigned == Unallocated {
			continue
		}
		i, known := index[assigned]
		if !known {
			continue
		}
		rank := s.Preferences[assigned]
		if rank >= 1 && rank <= len(faculty) {
			counts[i][rank-1]++
		}
	}

	return counts
}

// ComputeMetrics derives the summary metrics for a run. The average rank
// only considers allocated students whose achieved rank is a positive
// stated preference.
func ComputeMetrics(students []Student, faculty []string, result *Result) Metrics {
	m := Metrics{
		TotalStudents: len(students),
		TotalFaculty:  len(faculty),
		CohortCount:   len(result.Cohorts),
		FacultyLoad:   make(map[string]int, len(faculty)),
	}

	rankSum := 0
	ranked := 0

	for _, s := range students {
		assigned, ok := result.Assignments[s.Roll]
		if !ok || assigned == Unallocated {
			continue
		}
		m.AllocatedStudents++
		m.FacultyLoad[assigned]++

		rank := s.Preferences[assigned]
		if rank > 0 {
			rankSum += rank
			ranked++
			if rank == 1 {
				m.FirstChoice++
			}
			if rank <= 2 {
				m.TopTwo++
			}
			if rank <= 3 {
				m.TopThree++
			}
		}
	}

	if ranked > 0 {
		m.AveragePreferenceRank = float64(rankSum) / float64(ranked)
	}

	for _, load := range m.FacultyLoad {
		if m.MinLoad == 0 || load < m.MinLoad {
			m.MinLoad = load
		}
		if load > m.MaxLoad {
			m.MaxLoad = load
		}
	}

	return m
}

func emptyHistogram(facultyCount int) [][]int {
	counts := make([][]int, facultyCount)
	for i := range counts {
		counts[i] = make([]int, facultyCount)
	}
	return counts
}
