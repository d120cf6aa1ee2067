package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Students S1..S5 over faculty {X, Y, Z}, merit strictly decreasing.
// Cohort 1 = {S1, S2, S3}, cohort 2 = {S4, S5}.
func scenarioStudents() []Student {
	return []Student{
		{Roll: "S1", Name: "Alice", Email: "alice@school.edu", Merit: 9.8,
			Preferences: map[string]int{"X": 1, "Y": 2, "Z": 3}},
		{Roll: "S2", Name: "Bora", Email: "bora@school.edu", Merit: 9.5,
			Preferences: map[string]int{"X": 1, "Y": 2, "Z": 3}},
		{Roll: "S3", Name: "Cem", Email: "cem@school.edu", Merit: 9.1,
			Preferences: map[string]int{"Y": 1, "X": 2, "Z": 3}},
		{Roll: "S4", Name: "Dila", Email: "dila@school.edu", Merit: 8.7,
			Preferences: map[string]int{"Z": 1, "X": 2, "Y": 3}},
		{Roll: "S5", Name: "Efe", Email: "efe@school.edu", Merit: 8.2,
			Preferences: map[string]int{"Z": 1, "Y": 2, "X": 3}},
	}
}

var scenarioFaculty = []string{"X", "Y", "Z"}

func TestNewEngine_Preconditions(t *testing.T) {
	_, err := NewEngine(nil, scenarioFaculty)
	require.Error(t, err, "empty student set must be rejected")

	_, err = NewEngine(scenarioStudents(), nil)
	require.Error(t, err, "empty faculty list must be rejected")

	dup := scenarioStudents()
	dup[1].Roll = "S1"
	_, err = NewEngine(dup, scenarioFaculty)
	require.Error(t, err, "duplicate rolls must be rejected")
	assert.Contains(t, err.Error(), "S1")
}

func TestAllocate_ConcreteScenario(t *testing.T) {
	engine, err := NewEngine(scenarioStudents(), scenarioFaculty)
	require.NoError(t, err)

	result := engine.Allocate()

	// S1 takes X outright; S2 wanted X too but it is gone, so Y; S3 is
	// left with Z after X and Y are claimed.
	assert.Equal(t, "X", result.Assignments["S1"])
	assert.Equal(t, "Y", result.Assignments["S2"])
	assert.Equal(t, "Z", result.Assignments["S3"])

	// Second cohort sees a fresh pool.
	assert.Equal(t, "Z", result.Assignments["S4"])
	assert.Equal(t, "Y", result.Assignments["S5"])

	require.Len(t, result.Cohorts, 2)
	assert.Equal(t, []string{"S1", "S2", "S3"}, result.Cohorts[0])
	assert.Equal(t, []string{"S4", "S5"}, result.Cohorts[1])
}

func TestAllocate_Coverage(t *testing.T) {
	students := scenarioStudents()
	engine, err := NewEngine(students, scenarioFaculty)
	require.NoError(t, err)

	result := engine.Allocate()

	require.Len(t, result.Assignments, len(students))
	for _, s := range students {
		assigned, ok := result.Assignments[s.Roll]
		require.True(t, ok, "every student must have exactly one entry")
		if assigned != Unallocated {
			assert.Contains(t, scenarioFaculty, assigned)
		}
	}
}

func TestAllocate_PerCohortUniqueness(t *testing.T) {
	engine, err := NewEngine(scenarioStudents(), scenarioFaculty)
	require.NoError(t, err)

	result := engine.Allocate()

	for i, cohort := range result.Cohorts {
		seen := make(map[string]bool)
		for _, roll := range cohort {
			assigned := result.Assignments[roll]
			if assigned == Unallocated {
				continue
			}
			assert.False(t, seen[assigned], "faculty %s assigned twice in cohort %d", assigned, i)
			seen[assigned] = true
		}
	}
}

func TestAllocate_MeritPrecedence(t *testing.T) {
	// A and B share a top choice; A has the higher merit and must win it.
	students := []Student{
		{Roll: "B1", Merit: 7.0, Preferences: map[string]int{"X": 1, "Y": 2}},
		{Roll: "A1", Merit: 9.0, Preferences: map[string]int{"X": 1, "Y": 2}},
	}
	engine, err := NewEngine(students, []string{"X", "Y"})
	require.NoError(t, err)

	result := engine.Allocate()

	assert.Equal(t, "X", result.Assignments["A1"])
	assert.Equal(t, "Y", result.Assignments["B1"], "lower merit student must not receive the contested faculty")
}

func TestAllocate_EqualMeritRollTieBreak(t *testing.T) {
	// Equal merit: lexicographically smaller roll chooses first.
	students := []Student{
		{Roll: "2023B", Merit: 8.0, Preferences: map[string]int{"X": 1}},
		{Roll: "2023A", Merit: 8.0, Preferences: map[string]int{"X": 1}},
	}
	engine, err := NewEngine(students, []string{"X", "Y"})
	require.NoError(t, err)

	result := engine.Allocate()

	assert.Equal(t, "X", result.Assignments["2023A"])
	assert.Equal(t, "Y", result.Assignments["2023B"])
}

func TestAllocate_Deterministic(t *testing.T) {
	// Two faculty tied at the same rank for every student: the canonical
	// list order must decide, identically on every run.
	students := []Student{
		{Roll: "R1", Merit: 9.0, Preferences: map[string]int{"X": 1, "Y": 1, "Z": 1}},
		{Roll: "R2", Merit: 8.0, Preferences: map[string]int{"X": 1, "Y": 1, "Z": 1}},
		{Roll: "R3", Merit: 7.0, Preferences: map[string]int{}},
	}

	first := map[string]string{}
	for run := 0; run < 10; run++ {
		engine, err := NewEngine(students, []string{"X", "Y", "Z"})
		require.NoError(t, err)
		result := engine.Allocate()
		if run == 0 {
			for k, v := range result.Assignments {
				first[k] = v
			}
			continue
		}
		assert.Equal(t, first, result.Assignments, "run %d diverged", run)
	}

	// Ties broke in canonical order and the unranked student still got
	// the remaining faculty instead of going unallocated.
	assert.Equal(t, "X", first["R1"])
	assert.Equal(t, "Y", first["R2"])
	assert.Equal(t, "Z", first["R3"])
}

func TestAllocate_OutOfRangeRankTreatedAsWorst(t *testing.T) {
	// Rank 0 and rank 99 are not interpretable for F=2; a student who
	// stated them must not beat one with a legitimate rank.
	students := []Student{
		{Roll: "R1", Merit: 9.0, Preferences: map[string]int{"X": 0, "Y": 1}},
		{Roll: "R2", Merit: 8.0, Preferences: map[string]int{"X": 99, "Y": 2}},
	}
	engine, err := NewEngine(students, []string{"X", "Y"})
	require.NoError(t, err)

	result := engine.Allocate()

	assert.Equal(t, "Y", result.Assignments["R1"], "rank 0 must not outrank a stated rank 1")
	assert.Equal(t, "X", result.Assignments["R2"])
}

func TestAllocate_InputsNotMutated(t *testing.T) {
	students := scenarioStudents()
	original := make([]Student, len(students))
	copy(original, students)

	engine, err := NewEngine(students, scenarioFaculty)
	require.NoError(t, err)
	_ = engine.Allocate()

	assert.Equal(t, original, students, "allocation must not write into input records")
}

func TestResult_CohortOfAndAchievedRank(t *testing.T) {
	students := scenarioStudents()
	engine, err := NewEngine(students, scenarioFaculty)
	require.NoError(t, err)

	result := engine.Allocate()

	assert.Equal(t, 0, result.CohortOf("S2"))
	assert.Equal(t, 1, result.CohortOf("S5"))
	assert.Equal(t, -1, result.CohortOf("nope"))

	// S2 landed on Y, which they ranked 2.
	assert.Equal(t, 2, result.AchievedRank(students[1]))
}
