package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/facalloc/internal/app/allocation"
	appModels "github.com/yigit/facalloc/internal/app/models"
	appRepos "github.com/yigit/facalloc/internal/app/repositories"
)

// CreateDefaultData seeds a small demo dataset when the database is empty,
// so a fresh install has something to allocate against.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	datasetRepo := appRepos.NewDatasetRepository(dbPool)

	existing, err := datasetRepo.ListDatasets(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing datasets: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("datasets", len(existing)).Msg("Datasets already present, skipping demo seed")
		return nil
	}

	lgr.Info().Msg("Seeding demo dataset...")

	faculty := []string{"Dr. Rao", "Dr. Iyer", "Dr. Khan"}
	students := []allocation.Student{
		{Roll: "21CS001", Name: "Anita Desai", Email: "anita@school.edu", Merit: 9.4,
			Preferences: map[string]int{"Dr. Rao": 1, "Dr. Iyer": 2, "Dr. Khan": 3}},
		{Roll: "21CS002", Name: "Bharat Mehta", Email: "bharat@school.edu", Merit: 9.1,
			Preferences: map[string]int{"Dr. Rao": 1, "Dr. Khan": 2, "Dr. Iyer": 3}},
		{Roll: "21CS003", Name: "Chitra Nair", Email: "chitra@school.edu", Merit: 8.9,
			Preferences: map[string]int{"Dr. Iyer": 1, "Dr. Rao": 2, "Dr. Khan": 3}},
		{Roll: "21CS004", Name: "Deepak Sharma", Email: "deepak@school.edu", Merit: 8.6,
			Preferences: map[string]int{"Dr. Khan": 1, "Dr. Iyer": 2, "Dr. Rao": 3}},
		{Roll: "21CS005", Name: "Esha Patel", Email: "esha@school.edu", Merit: 8.3,
			Preferences: map[string]int{"Dr. Iyer": 1, "Dr. Khan": 2, "Dr. Rao": 3}},
		{Roll: "21CS006", Name: "Farhan Ali", Email: "farhan@school.edu", Merit: 8.0,
			Preferences: map[string]int{"Dr. Khan": 1, "Dr. Rao": 2, "Dr. Iyer": 3}},
	}

	ds := &appModels.Dataset{
		ID:           uuid.New(),
		Name:         "Demo intake",
		StudentCount: len(students),
		FacultyCount: len(faculty),
		CreatedAt:    time.Now().UTC(),
		Faculty:      faculty,
		Students:     students,
	}

	if err := datasetRepo.CreateDataset(ctx, ds); err != nil {
		return fmt.Errorf("failed to seed demo dataset: %w", err)
	}

	lgr.Info().Str("datasetID", ds.ID.String()).Msg("Demo dataset seeded")
	return nil
}
