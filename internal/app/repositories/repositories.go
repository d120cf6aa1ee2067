package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared sentinel for missing rows; repositories wrap
// it into their own error variables.
var ErrNotFound = errors.New("not found")

// Repositories holds all the repository instances
type Repositories struct {
	DatasetRepository *DatasetRepository
	RunRepository     *RunRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		DatasetRepository: NewDatasetRepository(db),
		RunRepository:     NewRunRepository(db),
	}
}
