package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/app/models"
)

// DatasetStore is the persistence surface the dataset service needs.
// Implemented by repositories.DatasetRepository; tests substitute fakes.
type DatasetStore interface {
	CreateDataset(ctx context.Context, ds *models.Dataset) error
	GetDatasetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error)
	ListDatasets(ctx context.Context) ([]*models.Dataset, error)
	LoadStudents(ctx context.Context, id uuid.UUID) ([]allocation.Student, []string, error)
	RenameDataset(ctx context.Context, id uuid.UUID, name string) error
	DeleteDataset(ctx context.Context, id uuid.UUID) error
}

// RunStore is the persistence surface the allocation service needs.
// Implemented by repositories.RunRepository.
type RunStore interface {
	CreateRun(ctx context.Context, run *models.AllocationRun) error
	GetRunByID(ctx context.Context, id uuid.UUID) (*models.AllocationRun, error)
	ListRunsByDataset(ctx context.Context, datasetID uuid.UUID) ([]*models.AllocationRun, error)
}
