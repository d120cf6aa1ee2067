package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/app/models"
	"github.com/yigit/facalloc/internal/app/repositories"
	"github.com/yigit/facalloc/internal/pkg/apperrors"
	"github.com/yigit/facalloc/internal/pkg/csvio"
	"github.com/yigit/facalloc/internal/pkg/filestorage"
	"github.com/yigit/facalloc/internal/pkg/validation"
)

// DatasetService defines the interface for dataset-related operations
type DatasetService interface {
	Import(ctx context.Context, name string, file *multipart.FileHeader) (*models.Dataset, allocation.Report, error)
	List(ctx context.Context) ([]*models.Dataset, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Dataset, error)
	Preview(ctx context.Context, id uuid.UUID, rows int) ([]allocation.Student, []string, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// datasetServiceImpl implements the DatasetService interface
type datasetServiceImpl struct {
	datasets DatasetStore
	storage  filestorage.FileStorage
}

// NewDatasetService creates a new dataset service instance
func NewDatasetService(datasets DatasetStore, storage filestorage.FileStorage) DatasetService {
	return &datasetServiceImpl{
		datasets: datasets,
		storage:  storage,
	}
}

// Import parses an uploaded preference CSV, validates it and persists it
// as a new dataset. The validation report is always returned; hard issues
// abort the import with ErrDatasetInvalid, soft warnings ride along with
// the stored dataset.
func (s *datasetServiceImpl) Import(ctx context.Context, name string, file *multipart.FileHeader) (*models.Dataset, allocation.Report, error) {
	var report allocation.Report

	if file == nil {
		return nil, report, fmt.Errorf("%w: no file uploaded", apperrors.ErrBadRequest)
	}

	src, err := file.Open()
	if err != nil {
		return nil, report, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	parsed, err := csvio.Read(src)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, err.Error())
	}

	report = allocation.Validate(parsed.Students, parsed.Faculty)
	for _, st := range parsed.Students {
		if st.Email != "" && !validation.IsValidEmail(st.Email) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("student %s has a malformed email: %s", st.Roll, st.Email))
		}
	}
	if !report.Valid {
		return nil, report, apperrors.ErrDatasetInvalid
	}

	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(file.Filename, ".csv")
	}

	filePath, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, report, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	ds := &models.Dataset{
		ID:           uuid.New(),
		Name:         name,
		FilePath:     filePath,
		StudentCount: len(parsed.Students),
		FacultyCount: len(parsed.Faculty),
		CreatedAt:    time.Now().UTC(),
		Faculty:      parsed.Faculty,
		Students:     parsed.Students,
	}

	if err := s.datasets.CreateDataset(ctx, ds); err != nil {
		if errors.Is(err, repositories.ErrDatasetAlreadyExists) {
			return nil, report, apperrors.NewConflictError("dataset with this name already exists")
		}
		return nil, report, fmt.Errorf("error creating dataset: %w", err)
	}

	return ds, report, nil
}

// List retrieves all datasets
func (s *datasetServiceImpl) List(ctx context.Context) ([]*models.Dataset, error) {
	datasets, err := s.datasets.ListDatasets(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving datasets: %w", err)
	}
	return datasets, nil
}

// Get retrieves a dataset by ID
func (s *datasetServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	ds, err := s.datasets.GetDatasetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("error retrieving dataset: %w", err)
	}
	return ds, nil
}

// Preview returns the first rows of a dataset along with the faculty list.
func (s *datasetServiceImpl) Preview(ctx context.Context, id uuid.UUID, rows int) ([]allocation.Student, []string, error) {
	if rows < 1 {
		rows = 5
	}

	students, faculty, err := s.datasets.LoadStudents(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, apperrors.ErrDatasetNotFound
		}
		return nil, nil, fmt.Errorf("error loading dataset rows: %w", err)
	}

	if rows < len(students) {
		students = students[:rows]
	}
	return students, faculty, nil
}

// Rename updates a dataset's display name
func (s *datasetServiceImpl) Rename(ctx context.Context, id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < validation.DatasetNameMinLength || len(name) > validation.DatasetNameMaxLength {
		return fmt.Errorf("%w: dataset name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.DatasetNameMinLength, validation.DatasetNameMaxLength)
	}

	if err := s.datasets.RenameDataset(ctx, id, name); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrDatasetNotFound
		}
		if errors.Is(err, repositories.ErrDatasetAlreadyExists) {
			return apperrors.NewConflictError("dataset with this name already exists")
		}
		return fmt.Errorf("error renaming dataset: %w", err)
	}
	return nil
}

// Delete removes a dataset, its rows and its run history. The stored
// upload file is deleted best-effort after the database rows.
func (s *datasetServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.datasets.DeleteDataset(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrDatasetNotFound
		}
		return fmt.Errorf("error deleting dataset: %w", err)
	}

	_ = s.storage.DeleteFile(ds.FilePath)
	return nil
}
