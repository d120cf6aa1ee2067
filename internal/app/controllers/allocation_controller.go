package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/facalloc/internal/app/models/dto"
	"github.com/yigit/facalloc/internal/app/services"
	"github.com/yigit/facalloc/internal/middleware"
)

// AllocationController handles allocation run operations
type AllocationController struct {
	allocationService services.AllocationService
}

// NewAllocationController creates a new AllocationController
func NewAllocationController(allocationService services.AllocationService) *AllocationController {
	return &AllocationController{
		allocationService: allocationService,
	}
}

// RunAllocation executes the allocation engine over a dataset
// @Summary Run an allocation
// @Description Executes a new allocation over the dataset and stores the outcome as a run. Earlier runs are kept; re-running the same dataset yields an identical assignment table under a new run ID.
// @Tags allocations
// @Produce json
// @Param id path string true "Dataset ID" Format(uuid)
// @Success 201 {object} dto.APIResponse{data=dto.MetricsResponse} "Allocation run completed"
// @Failure 400 {object} dto.ErrorResponse "Dataset cannot be allocated"
// @Failure 404 {object} dto.ErrorResponse "Dataset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets/{id}/allocations [post]
func (c *AllocationController) RunAllocation(ctx *gin.Context) {
	datasetID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	run, metrics, err := c.allocationService.Run(ctx, datasetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Data: gin.H{
			"run":     dto.NewRunResponse(run),
			"metrics": metrics,
		},
		Timestamp: time.Now(),
	})
}

// ListRuns retrieves the run history of a dataset
// @Summary List allocation runs
// @Description Retrieves all allocation runs executed over a dataset, newest first
// @Tags allocations
// @Produce json
// @Param id path string true "Dataset ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]dto.RunResponse} "Runs retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid dataset ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets/{id}/allocations [get]
func (c *AllocationController) ListRuns(ctx *gin.Context) {
	datasetID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	runs, err := c.allocationService.ListRuns(ctx, datasetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, dto.NewRunResponse(run))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetRun retrieves a run with its assignment table
// @Summary Get allocation run
// @Description Retrieves a run and its full assignment table in the dataset's original row order
// @Tags allocations
// @Produce json
// @Param id path string true "Run ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.RunDetailResponse} "Run retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid run ID"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id} [get]
func (c *AllocationController) GetRun(ctx *gin.Context) {
	runID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	run, rows, err := c.allocationService.GetRun(ctx, runID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewRunDetailResponse(run, rows),
		Timestamp: time.Now(),
	})
}

// GetMetrics retrieves the derived metrics of a run
// @Summary Get run metrics
// @Description Recomputes the summary metrics of a run from its stored assignments
// @Tags allocations
// @Produce json
// @Param id path string true "Run ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.MetricsResponse} "Metrics retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid run ID"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id}/metrics [get]
func (c *AllocationController) GetMetrics(ctx *gin.Context) {
	runID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	metrics, err := c.allocationService.Metrics(ctx, runID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.MetricsResponse{
			RunID:   runID.String(),
			Metrics: metrics,
		},
		Timestamp: time.Now(),
	})
}

// GetPreferenceStatistics retrieves the raw preference histogram
// @Summary Get preference statistics
// @Description Returns how often each faculty was given each preference rank across the whole dataset
// @Tags allocations
// @Produce json
// @Param id path string true "Run ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.HistogramResponse} "Statistics retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid run ID"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id}/statistics/preferences [get]
func (c *AllocationController) GetPreferenceStatistics(ctx *gin.Context) {
	runID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	faculty, counts, err := c.allocationService.PreferenceStatistics(ctx, runID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.HistogramResponse{Faculty: faculty, Counts: counts},
		Timestamp: time.Now(),
	})
}

// GetOutcomeStatistics retrieves the allocation-outcome histogram
// @Summary Get outcome statistics
// @Description Returns the preference ranks achieved by the students each faculty actually received in this run
// @Tags allocations
// @Produce json
// @Param id path string true "Run ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.HistogramResponse} "Statistics retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid run ID"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id}/statistics/outcomes [get]
func (c *AllocationController) GetOutcomeStatistics(ctx *gin.Context) {
	runID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	faculty, counts, err := c.allocationService.OutcomeStatistics(ctx, runID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.HistogramResponse{Faculty: faculty, Counts: counts},
		Timestamp: time.Now(),
	})
}

// GetSummaryReport renders the plain-text report of a run
// @Summary Get summary report
// @Description Renders a plain-text summary of the run's metrics
// @Tags allocations
// @Produce plain
// @Param id path string true "Run ID" Format(uuid)
// @Success 200 {string} string "Report rendered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid run ID"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id}/report [get]
func (c *AllocationController) GetSummaryReport(ctx *gin.Context) {
	runID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	text, err := c.allocationService.SummaryReport(ctx, runID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.String(http.StatusOK, text)
}

// ExportAllocations downloads the allocation table as CSV
// @Summary Export allocation CSV
// @Description Downloads the run's allocation table as a CSV attachment
// @Tags allocations
// @Produce text/csv
// @Param id path string true "Run ID" Format(uuid)
// @Success 200 {string} string "CSV exported successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid run ID"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations/{id}/export [get]
func (c *AllocationController) ExportAllocations(ctx *gin.Context) {
	runID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := c.allocationService.ExportCSV(ctx, runID, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("allocation_%s.csv", runID.String())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}
