package models

import (
	"time"

	"github.com/google/uuid"
)

// AllocationRun is one persisted execution of the allocation engine over a
// dataset. The stored assignments are the run's source of truth; metrics
// and histograms are recomputed from them plus the dataset on demand.
type AllocationRun struct {
	ID             uuid.UUID `json:"id" db:"id"`
	DatasetID      uuid.UUID `json:"datasetId" db:"dataset_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	AllocatedCount int       `json:"allocatedCount" db:"allocated_count"`
	CohortCount    int       `json:"cohortCount" db:"cohort_count"`
	MeanRank       float64   `json:"meanRank" db:"mean_rank"`

	// Relations (populated when needed)
	Assignments []Assignment `json:"assignments,omitempty"`
}

// Assignment is one student's outcome inside a run. Faculty holds the
// allocation.Unallocated sentinel when no faculty could be assigned.
type Assignment struct {
	Roll         string `json:"roll" db:"roll"`
	Faculty      string `json:"faculty" db:"faculty"`
	Cohort       int    `json:"cohort" db:"cohort"`
	AchievedRank int    `json:"achievedRank" db:"achieved_rank"` // 0 when the faculty was never ranked
}
