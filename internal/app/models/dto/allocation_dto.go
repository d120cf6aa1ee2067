package dto

import (
	"time"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/app/models"
	"github.com/yigit/facalloc/internal/pkg/csvio"
)

// RunResponse summarizes one allocation run
type RunResponse struct {
	ID             string    `json:"id" example:"f4f2cdd1-57b4-46f8-a9f2-2f8e9e7f0c11"`
	DatasetID      string    `json:"datasetId" example:"7b0f9a4e-3f6e-4a57-9d35-8f1f6f6d9f10"`
	AllocatedCount int       `json:"allocatedCount" example:"184"`
	CohortCount    int       `json:"cohortCount" example:"16"`
	MeanRank       float64   `json:"meanRank" example:"1.83"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RunDetailResponse is a run with its full assignment table
type RunDetailResponse struct {
	Run         RunResponse     `json:"run"`
	Assignments []AssignmentRow `json:"assignments"`
}

// AssignmentRow joins a student's identity with their outcome in a run
type AssignmentRow struct {
	Roll         string  `json:"roll" example:"21CS001"`
	Name         string  `json:"name" example:"Anita Desai"`
	Email        string  `json:"email" example:"anita@school.edu"`
	Merit        float64 `json:"merit" example:"9.2"`
	Allocated    string  `json:"allocated" example:"Dr. Rao"`
	Cohort       int     `json:"cohort" example:"0"`
	AchievedRank int     `json:"achievedRank" example:"1"`
}

// HistogramResponse is a faculty-by-rank count table. Counts[i][r-1] is
// the number of students counted for Faculty[i] at preference rank r.
type HistogramResponse struct {
	Faculty []string `json:"faculty"`
	Counts  [][]int  `json:"counts"`
}

// MetricsResponse wraps the derived summary metrics of a run
type MetricsResponse struct {
	RunID   string             `json:"runId"`
	Metrics allocation.Metrics `json:"metrics"`
}

// NewRunResponse maps a run model to its response form
func NewRunResponse(run *models.AllocationRun) RunResponse {
	return RunResponse{
		ID:             run.ID.String(),
		DatasetID:      run.DatasetID.String(),
		AllocatedCount: run.AllocatedCount,
		CohortCount:    run.CohortCount,
		MeanRank:       run.MeanRank,
		CreatedAt:      run.CreatedAt,
	}
}

// NewRunDetailResponse joins the export rows with the run's stored cohort
// and rank columns, keeping the dataset's original row order.
func NewRunDetailResponse(run *models.AllocationRun, rows []csvio.AllocationRow) RunDetailResponse {
	byRoll := make(map[string]models.Assignment, len(run.Assignments))
	for _, a := range run.Assignments {
		byRoll[a.Roll] = a
	}

	assignments := make([]AssignmentRow, 0, len(rows))
	for _, row := range rows {
		a := byRoll[row.Roll]
		assignments = append(assignments, AssignmentRow{
			Roll:         row.Roll,
			Name:         row.Name,
			Email:        row.Email,
			Merit:        row.Merit,
			Allocated:    row.Allocated,
			Cohort:       a.Cohort,
			AchievedRank: a.AchievedRank,
		})
	}

	return RunDetailResponse{
		Run:         NewRunResponse(run),
		Assignments: assignments,
	}
}
