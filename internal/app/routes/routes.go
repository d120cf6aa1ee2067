package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/facalloc/internal/app/controllers"
	"github.com/yigit/facalloc/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	datasetController *controllers.DatasetController,
	allocationController *controllers.AllocationController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Dataset routes
	datasets := v1.Group("/datasets")
	{
		datasets.POST("", datasetController.ImportDataset)
		datasets.GET("", datasetController.ListDatasets)
		datasets.GET("/:id", datasetController.GetDataset)
		datasets.GET("/:id/preview", datasetController.PreviewDataset)
		datasets.PUT("/:id", datasetController.RenameDataset)
		datasets.DELETE("/:id", datasetController.DeleteDataset)

		// Runs scoped to a dataset
		datasets.POST("/:id/allocations", allocationController.RunAllocation)
		datasets.GET("/:id/allocations", allocationController.ListRuns)
	}

	// Allocation run routes
	allocations := v1.Group("/allocations")
	{
		allocations.GET("/:id", allocationController.GetRun)
		allocations.GET("/:id/metrics", allocationController.GetMetrics)
		allocations.GET("/:id/statistics/preferences", allocationController.GetPreferenceStatistics)
		allocations.GET("/:id/statistics/outcomes", allocationController.GetOutcomeStatistics)
		allocations.GET("/:id/report", allocationController.GetSummaryReport)
		allocations.GET("/:id/export", allocationController.ExportAllocations)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
