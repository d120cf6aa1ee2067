package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceHistogram_Totals(t *testing.T) {
	students := scenarioStudents()

	counts := PreferenceHistogram(students, scenarioFaculty)

	total := 0
	for _, row := range counts {
		for _, c := range row {
			total += c
		}
	}
	// Every student ranked every faculty exactly once.
	assert.Equal(t, len(students)*len(scenarioFaculty), total)

	// Faculty X: S1 and S2 at rank 1, S3 and S4 at rank 2, S5 at rank 3.
	assert.Equal(t, []int{2, 2, 1}, counts[0])
}

func TestPreferenceHistogram_IgnoresInvalidRanks(t *testing.T) {
	students := []Student{
		{Roll: "R1", Preferences: map[string]int{"X": 0, "Y": 4}},
		{Roll: "R2", Preferences: map[string]int{"X": 1}},
	}

	counts := PreferenceHistogram(students, []string{"X", "Y"})

	assert.Equal(t, []int{1, 0}, counts[0], "only the interpretable rank counts")
	assert.Equal(t, []int{0, 0}, counts[1])
}

func TestOutcomeHistogram(t *testing.T) {
	students := scenarioStudents()
	engine, err := NewEngine(students, scenarioFaculty)
	require.NoError(t, err)
	result := engine.Allocate()

	counts := OutcomeHistogram(students, scenarioFaculty, result)

	// S1->X at rank 1; S2->Y rank 2, S5->Y rank 2; S3->Z rank 3, S4->Z rank 1.
	assert.Equal(t, []int{1, 0, 0}, counts[0])
	assert.Equal(t, []int{0, 2, 0}, counts[1])
	assert.Equal(t, []int{1, 0, 1}, counts[2])

	total := 0
	for _, row := range counts {
		for _, c := range row {
			total += c
		}
	}
	assert.Equal(t, 5, total, "every allocated student with a stated rank lands in one cell")
}

func TestComputeMetrics(t *testing.T) {
	students := scenarioStudents()
	engine, err := NewEngine(students, scenarioFaculty)
	require.NoError(t, err)
	result := engine.Allocate()

	m := ComputeMetrics(students, scenarioFaculty, result)

	assert.Equal(t, 5, m.TotalStudents)
	assert.Equal(t, 3, m.TotalFaculty)
	assert.Equal(t, 2, m.CohortCount)
	assert.Equal(t, 5, m.AllocatedStudents)

	// Achieved ranks: 1, 2, 3, 1, 2 -> mean 1.8.
	assert.InDelta(t, 1.8, m.AveragePreferenceRank, 1e-9)

	assert.Equal(t, map[string]int{"X": 1, "Y": 2, "Z": 2}, m.FacultyLoad)
	assert.Equal(t, 1, m.MinLoad)
	assert.Equal(t, 2, m.MaxLoad)

	assert.Equal(t, 2, m.FirstChoice)
	assert.Equal(t, 4, m.TopTwo)
	assert.Equal(t, 5, m.TopThree)
}

func TestMetrics_RederivationIdempotent(t *testing.T) {
	students := scenarioStudents()
	engine, err := NewEngine(students, scenarioFaculty)
	require.NoError(t, err)
	result := engine.Allocate()

	first := ComputeMetrics(students, scenarioFaculty, result)
	firstPrefs := PreferenceHistogram(students, scenarioFaculty)
	firstOutcome := OutcomeHistogram(students, scenarioFaculty, result)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ComputeMetrics(students, scenarioFaculty, result))
		assert.Equal(t, firstPrefs, PreferenceHistogram(students, scenarioFaculty))
		assert.Equal(t, firstOutcome, OutcomeHistogram(students, scenarioFaculty, result))
	}
}

func TestComputeMetrics_NoRankedAllocations(t *testing.T) {
	students := []Student{{Roll: "R1", Merit: 5.0, Preferences: map[string]int{}}}
	engine, err := NewEngine(students, []string{"X"})
	require.NoError(t, err)
	result := engine.Allocate()

	m := ComputeMetrics(students, []string{"X"}, result)

	// Allocated (pool was not empty) but unranked, so no average exists.
	assert.Equal(t, 1, m.AllocatedStudents)
	assert.Zero(t, m.AveragePreferenceRank)
	assert.Zero(t, m.FirstChoice)
}
