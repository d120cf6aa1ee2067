package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/app/models"
	"github.com/yigit/facalloc/internal/pkg/logger"
)

// Dataset error types
var (
	// ErrDatasetNotFound is returned when a dataset is not found.
	ErrDatasetNotFound = ErrNotFound // Use shared ErrNotFound
	// ErrDatasetAlreadyExists is returned when a dataset with the same name exists.
	ErrDatasetAlreadyExists = errors.New("dataset with this name already exists")
)

// DatasetRepository handles dataset database operations
type DatasetRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDatasetRepository creates a new DatasetRepository
func NewDatasetRepository(db *pgxpool.Pool) *DatasetRepository {
	return &DatasetRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // 23505 is unique_violation
}

// CreateDataset persists a dataset with its faculty columns, student rows
// and preference table in one transaction.
func (r *DatasetRepository) CreateDataset(ctx context.Context, ds *models.Dataset) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Insert("datasets").
		Columns("id", "name", "file_path", "student_count", "faculty_count", "created_at").
		Values(ds.ID, ds.Name, ds.FilePath, ds.StudentCount, ds.FacultyCount, ds.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create dataset query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return ErrDatasetAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create dataset query")
		return fmt.Errorf("error creating dataset: %w", err)
	}

	facultyInsert := r.sb.Insert("dataset_faculties").Columns("dataset_id", "position", "name")
	for i, name := range ds.Faculty {
		facultyInsert = facultyInsert.Values(ds.ID, i, name)
	}
	if sql, args, err = facultyInsert.ToSql(); err != nil {
		return fmt.Errorf("failed to build faculty insert query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error inserting dataset faculties")
		return fmt.Errorf("error creating dataset faculties: %w", err)
	}

	studentInsert := r.sb.Insert("dataset_students").
		Columns("dataset_id", "position", "roll", "name", "email", "merit")
	prefInsert := r.sb.Insert("dataset_preferences").Columns("dataset_id", "roll", "faculty", "rank")
	prefCount := 0

	for i, s := range ds.Students {
		studentInsert = studentInsert.Values(ds.ID, i, s.Roll, s.Name, s.Email, s.Merit)
		for _, f := range ds.Faculty {
			if rank, ok := s.Preferences[f]; ok {
				prefInsert = prefInsert.Values(ds.ID, s.Roll, f, rank)
				prefCount++
			}
		}
	}

	if sql, args, err = studentInsert.ToSql(); err != nil {
		return fmt.Errorf("failed to build student insert query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error inserting dataset students")
		return fmt.Errorf("error creating dataset students: %w", err)
	}

	if prefCount > 0 {
		if sql, args, err = prefInsert.ToSql(); err != nil {
			return fmt.Errorf("failed to build preference insert query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Msg("Error inserting dataset preferences")
			return fmt.Errorf("error creating dataset preferences: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetDatasetByID retrieves dataset metadata plus its faculty list.
func (r *DatasetRepository) GetDatasetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	sql, args, err := r.sb.Select("id", "name", "file_path", "student_count", "faculty_count", "created_at").
		From("datasets").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get dataset query: %w", err)
	}

	ds := &models.Dataset{}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&ds.ID, &ds.Name, &ds.FilePath, &ds.StudentCount, &ds.FacultyCount, &ds.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDatasetNotFound
		}
		logger.Error().Err(err).Str("datasetID", id.String()).Msg("Error scanning dataset row")
		return nil, fmt.Errorf("error getting dataset by ID: %w", err)
	}

	faculty, err := r.getFaculty(ctx, id)
	if err != nil {
		return nil, err
	}
	ds.Faculty = faculty

	return ds, nil
}

// ListDatasets retrieves all datasets, newest first.
func (r *DatasetRepository) ListDatasets(ctx context.Context) ([]*models.Dataset, error) {
	sql, args, err := r.sb.Select("id", "name", "file_path", "student_count", "faculty_count", "created_at").
		From("datasets").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list datasets query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list datasets query")
		return nil, fmt.Errorf("error querying datasets: %w", err)
	}
	defer rows.Close()

	datasets := []*models.Dataset{}
	for rows.Next() {
		ds := &models.Dataset{}
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.FilePath, &ds.StudentCount, &ds.FacultyCount, &ds.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning dataset row: %w", err)
		}
		datasets = append(datasets, ds)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dataset rows: %w", err)
	}

	return datasets, nil
}

// LoadStudents loads the full student rows and preference table of a
// dataset, in the original file order, along with the canonical faculty
// list.
func (r *DatasetRepository) LoadStudents(ctx context.Context, id uuid.UUID) ([]allocation.Student, []string, error) {
	faculty, err := r.getFaculty(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(faculty) == 0 {
		return nil, nil, ErrDatasetNotFound
	}

	sql, args, err := r.sb.Select("roll", "name", "email", "merit").
		From("dataset_students").
		Where(squirrel.Eq{"dataset_id": id}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build load students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying dataset students: %w", err)
	}
	defer rows.Close()

	var students []allocation.Student
	index := make(map[string]int)
	for rows.Next() {
		var s allocation.Student
		if err := rows.Scan(&s.Roll, &s.Name, &s.Email, &s.Merit); err != nil {
			return nil, nil, fmt.Errorf("error scanning student row: %w", err)
		}
		s.Preferences = make(map[string]int, len(faculty))
		index[s.Roll] = len(students)
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	sql, args, err = r.sb.Select("roll", "faculty", "rank").
		From("dataset_preferences").
		Where(squirrel.Eq{"dataset_id": id}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build load preferences query: %w", err)
	}

	prefRows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying dataset preferences: %w", err)
	}
	defer prefRows.Close()

	for prefRows.Next() {
		var roll, facultyName string
		var rank int
		if err := prefRows.Scan(&roll, &facultyName, &rank); err != nil {
			return nil, nil, fmt.Errorf("error scanning preference row: %w", err)
		}
		if i, ok := index[roll]; ok {
			students[i].Preferences[facultyName] = rank
		}
	}
	if err := prefRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating preference rows: %w", err)
	}

	return students, faculty, nil
}

// RenameDataset updates a dataset's display name.
func (r *DatasetRepository) RenameDataset(ctx context.Context, id uuid.UUID, name string) error {
	sql, args, err := r.sb.Update("datasets").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build rename dataset query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDatasetAlreadyExists
		}
		logger.Error().Err(err).Str("datasetID", id.String()).Msg("Error executing rename dataset query")
		return fmt.Errorf("error renaming dataset: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDatasetNotFound
	}

	return nil
}

// DeleteDataset deletes a dataset; rows, preferences and runs follow via
// ON DELETE CASCADE.
func (r *DatasetRepository) DeleteDataset(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("datasets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete dataset query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("datasetID", id.String()).Msg("Error executing delete dataset query")
		return fmt.Errorf("error deleting dataset: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDatasetNotFound
	}

	return nil
}

func (r *DatasetRepository) getFaculty(ctx context.Context, id uuid.UUID) ([]string, error) {
	sql, args, err := r.sb.Select("name").
		From("dataset_faculties").
		Where(squirrel.Eq{"dataset_id": id}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying dataset faculties: %w", err)
	}
	defer rows.Close()

	var faculty []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculty = append(faculty, name)
	}

	return faculty, rows.Err()
}
