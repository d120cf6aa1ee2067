package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/pkg/apperrors"
)

func serviceStudents() []allocation.Student {
	return []allocation.Student{
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

func newAllocationFixture() (AllocationService, *fakeDatasetStore, *fakeRunStore, uuid.UUID) {
	datasets := newFakeDatasetStore()
	runs := newFakeRunStore()
	id := seedDataset(datasets, serviceStudents(), []string{"X", "Y", "Z"})
	svc := NewAllocationService(datasets, runs, zerolog.Nop())
	return svc, datasets, runs, id
}

func TestAllocationService_Run(t *testing.T) {
	svc, _, runs, datasetID := newAllocationFixture()

	run, metrics, err := svc.Run(context.Background(), datasetID)
	require.NoError(t, err)

	assert.Equal(t, datasetID, run.DatasetID)
	assert.Equal(t, 5, run.AllocatedCount)
	assert.Equal(t, 2, run.CohortCount)
	assert.InDelta(t, 1.8, run.MeanRank, 1e-9)
	assert.Equal(t, 5, metrics.AllocatedStudents)

	stored, ok := runs.runs[run.ID]
	require.True(t, ok, "run must be persisted")
	assert.Len(t, stored.Assignments, 5)
}

func TestAllocationService_Run_DatasetMissing(t *testing.T) {
	svc, _, _, _ := newAllocationFixture()

	_, _, err := svc.Run(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrDatasetNotFound)
}

func TestAllocationService_RunsAreIndependent(t *testing.T) {
	svc, _, runs, datasetID := newAllocationFixture()

	first, _, err := svc.Run(context.Background(), datasetID)
	require.NoError(t, err)
	second, _, err := svc.Run(context.Background(), datasetID)
	require.NoError(t, err)

	// Re-running appends a new run rather than overwriting the first.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, runs.runs, 2)

	// Deterministic engine: both runs carry identical outcomes.
	firstOutcomes := make(map[string]string)
	for _, a := range first.Assignments {
		firstOutcomes[a.Roll] = a.Faculty
	}
	for _, a := range second.Assignments {
		assert.Equal(t, firstOutcomes[a.Roll], a.Faculty)
	}
}

func TestAllocationService_GetRun(t *testing.T) {
	svc, _, _, datasetID := newAllocationFixture()

	run, _, err := svc.Run(context.Background(), datasetID)
	require.NoError(t, err)

	got, rows, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	require.Len(t, rows, 5)
	// Rows follow the dataset's original order, not merit order.
	assert.Equal(t, "S1", rows[0].Roll)
	assert.Equal(t, "X", rows[0].Allocated)
	assert.Equal(t, "S5", rows[4].Roll)
	assert.Equal(t, "Y", rows[4].Allocated)
}

func TestAllocationService_MetricsRederivation(t *testing.T) {
	svc, _, _, datasetID := newAllocationFixture()

	run, fresh, err := svc.Run(context.Background(), datasetID)
	require.NoError(t, err)

	// Metrics recomputed from the persisted run match the ones computed
	// from the live result, every time.
	for i := 0; i < 3; i++ {
		derived, err := svc.Metrics(context.Background(), run.ID)
		require.NoError(t, err)
		assert.Equal(t, fresh, derived)
	}
}

func TestAllocationService_Statistics(t *testing.T) {
	svc, _, _, datasetID := newAllocationFixture()

	run, _, err := svc.Run(context.Background(), datasetID)
	require.NoError(t, err)

	faculty, prefs, err := svc.PreferenceStatistics(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, faculty)

	total := 0
	for _, row := range prefs {
		for _, c := range row {
			total += c
		}
	}
	assert.Equal(t, 15, total, "5 students x 3 fully-ranked faculty")

	_, outcomes, err := svc.OutcomeStatistics(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0}, outcomes[0], "faculty X received one first-choice student")
}

func TestAllocationService_SummaryReportAndExport(t *testing.T) {
	svc, _, _, datasetID := newAllocationFixture()

	run, _, err := svc.Run(context.Background(), datasetID)
	require.NoError(t, err)

	text, err := svc.SummaryReport(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Total students:            5")

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), run.ID, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Roll,Name,Email,CGPA,Allocated", lines[0])
	assert.Contains(t, lines[1], "S1")
	assert.Contains(t, lines[1], "X")
}

func TestAllocationService_RunMissing(t *testing.T) {
	svc, _, _, _ := newAllocationFixture()

	_, _, err := svc.GetRun(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrRunNotFound)

	_, err = svc.Metrics(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrRunNotFound)
}
