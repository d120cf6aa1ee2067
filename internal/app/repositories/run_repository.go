package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/facalloc/internal/app/models"
	"github.com/yigit/facalloc/internal/pkg/logger"
)

// Run error types
var (
	// ErrRunNotFound is returned when an allocation run is not found.
	ErrRunNotFound = ErrNotFound // Use shared ErrNotFound
)

// RunRepository handles allocation run database operations
type RunRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(db *pgxpool.Pool) *RunRepository {
	return &RunRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRun persists a run and its assignment table in one transaction.
func (r *RunRepository) CreateRun(ctx context.Context, run *models.AllocationRun) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Insert("allocation_runs").
		Columns("id", "dataset_id", "created_at", "allocated_count", "cohort_count", "mean_rank").
		Values(run.ID, run.DatasetID, run.CreatedAt, run.AllocatedCount, run.CohortCount, run.MeanRank).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create run query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create run query")
		return fmt.Errorf("error creating allocation run: %w", err)
	}

	if len(run.Assignments) > 0 {
		insert := r.sb.Insert("allocation_assignments").
			Columns("run_id", "roll", "faculty", "cohort", "achieved_rank")
		for _, a := range run.Assignments {
			insert = insert.Values(run.ID, a.Roll, a.Faculty, a.Cohort, a.AchievedRank)
		}

		if sql, args, err = insert.ToSql(); err != nil {
			return fmt.Errorf("failed to build assignment insert query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Msg("Error inserting run assignments")
			return fmt.Errorf("error creating run assignments: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetRunByID retrieves a run together with its assignments.
func (r *RunRepository) GetRunByID(ctx context.Context, id uuid.UUID) (*models.AllocationRun, error) {
	sql, args, err := r.sb.Select("id", "dataset_id", "created_at", "allocated_count", "cohort_count", "mean_rank").
		From("allocation_runs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get run query: %w", err)
	}

	run := &models.AllocationRun{}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&run.ID, &run.DatasetID, &run.CreatedAt, &run.AllocatedCount, &run.CohortCount, &run.MeanRank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		logger.Error().Err(err).Str("runID", id.String()).Msg("Error scanning run row")
		return nil, fmt.Errorf("error getting run by ID: %w", err)
	}

	sql, args, err = r.sb.Select("roll", "faculty", "cohort", "achieved_rank").
		From("allocation_assignments").
		Where(squirrel.Eq{"run_id": id}).
		OrderBy("cohort ASC", "roll ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying run assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.Roll, &a.Faculty, &a.Cohort, &a.AchievedRank); err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		run.Assignments = append(run.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}

	return run, nil
}

// ListRunsByDataset retrieves the run history of a dataset, newest first,
// without assignment tables.
func (r *RunRepository) ListRunsByDataset(ctx context.Context, datasetID uuid.UUID) ([]*models.AllocationRun, error) {
	sql, args, err := r.sb.Select("id", "dataset_id", "created_at", "allocated_count", "cohort_count", "mean_rank").
		From("allocation_runs").
		Where(squirrel.Eq{"dataset_id": datasetID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list runs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list runs query")
		return nil, fmt.Errorf("error querying allocation runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.AllocationRun{}
	for rows.Next() {
		run := &models.AllocationRun{}
		if err := rows.Scan(&run.ID, &run.DatasetID, &run.CreatedAt, &run.AllocatedCount, &run.CohortCount, &run.MeanRank); err != nil {
			return nil, fmt.Errorf("error scanning run row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}
