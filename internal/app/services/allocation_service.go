package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/app/models"
	"github.com/yigit/facalloc/internal/app/repositories"
	"github.com/yigit/facalloc/internal/pkg/apperrors"
	"github.com/yigit/facalloc/internal/pkg/csvio"
	"github.com/yigit/facalloc/internal/pkg/report"
)

// AllocationService defines the interface for allocation run operations
type AllocationService interface {
	Run(ctx context.Context, datasetID uuid.UUID) (*models.AllocationRun, allocation.Metrics, error)
	GetRun(ctx context.Context, runID uuid.UUID) (*models.AllocationRun, []csvio.AllocationRow, error)
	ListRuns(ctx context.Context, datasetID uuid.UUID) ([]*models.AllocationRun, error)
	Metrics(ctx context.Context, runID uuid.UUID) (allocation.Metrics, error)
	PreferenceStatistics(ctx context.Context, runID uuid.UUID) ([]string, [][]int, error)
	OutcomeStatistics(ctx context.Context, runID uuid.UUID) ([]string, [][]int, error)
	SummaryReport(ctx context.Context, runID uuid.UUID) (string, error)
	ExportCSV(ctx context.Context, runID uuid.UUID, w io.Writer) error
}

// allocationServiceImpl implements the AllocationService interface
type allocationServiceImpl struct {
	datasets DatasetStore
	runs     RunStore
	logger   zerolog.Logger
}

// NewAllocationService creates a new allocation service instance
func NewAllocationService(datasets DatasetStore, runs RunStore, logger zerolog.Logger) AllocationService {
	return &allocationServiceImpl{
		datasets: datasets,
		runs:     runs,
		logger:   logger,
	}
}

// Run loads the dataset fresh, executes the allocation engine and persists
// the outcome as a new run. Earlier runs of the same dataset are kept, so
// re-running never overwrites anything.
func (s *allocationServiceImpl) Run(ctx context.Context, datasetID uuid.UUID) (*models.AllocationRun, allocation.Metrics, error) {
	var metrics allocation.Metrics

	students, faculty, err := s.datasets.LoadStudents(ctx, datasetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, metrics, apperrors.ErrDatasetNotFound
		}
		return nil, metrics, fmt.Errorf("error loading dataset: %w", err)
	}

	engine, err := allocation.NewEngine(students, faculty)
	if err != nil {
		return nil, metrics, fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
	}

	result := engine.Allocate()
	metrics = allocation.ComputeMetrics(students, faculty, result)

	run := &models.AllocationRun{
		ID:             uuid.New(),
		DatasetID:      datasetID,
		CreatedAt:      time.Now().UTC(),
		AllocatedCount: metrics.AllocatedStudents,
		CohortCount:    metrics.CohortCount,
		MeanRank:       metrics.AveragePreferenceRank,
		Assignments:    assignmentsFromResult(students, result),
	}

	if err := s.runs.CreateRun(ctx, run); err != nil {
		return nil, metrics, fmt.Errorf("error persisting allocation run: %w", err)
	}

	s.logger.Info().
		Str("runID", run.ID.String()).
		Str("datasetID", datasetID.String()).
		Int("allocated", run.AllocatedCount).
		Int("cohorts", run.CohortCount).
		Msg("Allocation run completed")

	return run, metrics, nil
}

// GetRun retrieves a run and its assignment table joined with student
// identity, in the dataset's original row order.
func (s *allocationServiceImpl) GetRun(ctx context.Context, runID uuid.UUID) (*models.AllocationRun, []csvio.AllocationRow, error) {
	run, students, _, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	result := resultFromRun(run)
	return run, csvio.RowsFromResult(students, result), nil
}

// ListRuns retrieves the run history of a dataset
func (s *allocationServiceImpl) ListRuns(ctx context.Context, datasetID uuid.UUID) ([]*models.AllocationRun, error) {
	runs, err := s.runs.ListRunsByDataset(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving allocation runs: %w", err)
	}
	return runs, nil
}

// Metrics recomputes the summary metrics of a run from its stored
// assignments and the dataset rows.
func (s *allocationServiceImpl) Metrics(ctx context.Context, runID uuid.UUID) (allocation.Metrics, error) {
	run, students, faculty, err := s.loadRun(ctx, runID)
	if err != nil {
		return allocation.Metrics{}, err
	}

	return allocation.ComputeMetrics(students, faculty, resultFromRun(run)), nil
}

// PreferenceStatistics derives the raw preference histogram of the run's
// dataset: how often each faculty was given each rank, over everyone.
func (s *allocationServiceImpl) PreferenceStatistics(ctx context.Context, runID uuid.UUID) ([]string, [][]int, error) {
	_, students, faculty, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	return faculty, allocation.PreferenceHistogram(students, faculty), nil
}

// OutcomeStatistics derives the allocation-outcome histogram: the ranks
// achieved by the students each faculty actually received.
func (s *allocationServiceImpl) OutcomeStatistics(ctx context.Context, runID uuid.UUID) ([]string, [][]int, error) {
	run, students, faculty, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	return faculty, allocation.OutcomeHistogram(students, faculty, resultFromRun(run)), nil
}

// SummaryReport renders the plain-text summary of a run
func (s *allocationServiceImpl) SummaryReport(ctx context.Context, runID uuid.UUID) (string, error) {
	metrics, err := s.Metrics(ctx, runID)
	if err != nil {
		return "", err
	}
	return report.Summary(metrics), nil
}

// ExportCSV streams the run's allocation table as CSV
func (s *allocationServiceImpl) ExportCSV(ctx context.Context, runID uuid.UUID, w io.Writer) error {
	run, students, _, err := s.loadRun(ctx, runID)
	if err != nil {
		return err
	}

	rows := csvio.RowsFromResult(students, resultFromRun(run))
	return csvio.WriteAllocations(w, rows)
}

// loadRun fetches a run plus the dataset rows it was computed from.
func (s *allocationServiceImpl) loadRun(ctx context.Context, runID uuid.UUID) (*models.AllocationRun, []allocation.Student, []string, error) {
	run, err := s.runs.GetRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, nil, apperrors.ErrRunNotFound
		}
		return nil, nil, nil, fmt.Errorf("error retrieving run: %w", err)
	}

	students, faculty, err := s.datasets.LoadStudents(ctx, run.DatasetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, nil, apperrors.ErrDatasetNotFound
		}
		return nil, nil, nil, fmt.Errorf("error loading dataset: %w", err)
	}

	return run, students, faculty, nil
}

// assignmentsFromResult flattens an engine result into persistable rows.
func assignmentsFromResult(students []allocation.Student, result *allocation.Result) []models.Assignment {
	byRoll := make(map[string]allocation.Student, len(students))
	for _, st := range students {
		byRoll[st.Roll] = st
	}

	assignments := make([]models.Assignment, 0, len(students))
	for cohort, rolls := range result.Cohorts {
		for _, roll := range rolls {
			assignments = append(assignments, models.Assignment{
				Roll:         roll,
				Faculty:      result.Assignments[roll],
				Cohort:       cohort,
				AchievedRank: result.AchievedRank(byRoll[roll]),
			})
		}
	}
	return assignments
}

// resultFromRun rebuilds the engine result form from persisted
// assignments, so the metric passes run on stored data exactly as they
// would on a fresh result.
func resultFromRun(run *models.AllocationRun) *allocation.Result {
	result := &allocation.Result{
		Assignments: make(map[string]string, len(run.Assignments)),
		Cohorts:     make([][]string, run.CohortCount),
	}

	for _, a := range run.Assignments {
		result.Assignments[a.Roll] = a.Faculty
		if a.Cohort >= 0 && a.Cohort < run.CohortCount {
			result.Cohorts[a.Cohort] = append(result.Cohorts[a.Cohort], a.Roll)
		}
	}

	return result
}
