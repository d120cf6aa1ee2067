package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/facalloc/internal/app/allocation"
)

func TestSummary(t *testing.T) {
	m := allocation.Metrics{
		TotalStudents:         5,
		TotalFaculty:          3,
		CohortCount:           2,
		AllocatedStudents:     5,
		AveragePreferenceRank: 1.8,
		MinLoad:               1,
		MaxLoad:               2,
		FirstChoice:           2,
		TopTwo:                4,
		TopThree:              5,
	}

	out := Summary(m)

	assert.Contains(t, out, "Total students:            5")
	assert.Contains(t, out, "Number of cohorts:         2")
	assert.Contains(t, out, "Average preference rank:   1.80")
	assert.Contains(t, out, "Got 1st preference:        2 (40.0%)")
	assert.Contains(t, out, "Got top-3 preference:      5 (100.0%)")
}

func TestSummary_NothingAllocated(t *testing.T) {
	out := Summary(allocation.Metrics{TotalStudents: 3, TotalFaculty: 2})

	assert.Contains(t, out, "No students were allocated.")
}

func TestSummary_Idempotent(t *testing.T) {
	m := allocation.Metrics{TotalStudents: 1, TotalFaculty: 1, AllocatedStudents: 1, FirstChoice: 1, TopTwo: 1, TopThree: 1}

	assert.Equal(t, Summary(m), Summary(m))
}
