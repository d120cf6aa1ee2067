package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yigit/facalloc/internal/app/models/dto"
	"github.com/yigit/facalloc/internal/app/services"
	"github.com/yigit/facalloc/internal/middleware"
	"github.com/yigit/facalloc/internal/pkg/apperrors"
)

// DatasetController handles dataset-related operations
type DatasetController struct {
	datasetService services.DatasetService
}

// NewDatasetController creates a new DatasetController
func NewDatasetController(datasetService services.DatasetService) *DatasetController {
	return &DatasetController{
		datasetService: datasetService,
	}
}

// parseID extracts and validates a UUID path parameter. It writes the
// error response itself and reports success through the bool.
func parseID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
		errorDetail = errorDetail.WithDetails(param + " must be a valid UUID").WithField(param)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// ImportDataset handles preference CSV upload
// @Summary Import a preference dataset
// @Description Uploads a CSV of student rows and faculty preference columns, validates it and stores it as a new dataset. The validation report is returned alongside the dataset; soft warnings do not block the import.
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Preference CSV (Roll,Name,Email,CGPA followed by one column per faculty)"
// @Param name formData string false "Display name (defaults to the file name)"
// @Success 201 {object} dto.APIResponse{data=dto.ImportResponse} "Dataset imported successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed CSV or dataset failed validation"
// @Failure 409 {object} dto.ErrorResponse "Dataset with this name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets [post]
func (c *DatasetController) ImportDataset(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file upload")
		errorDetail = errorDetail.WithDetails("a CSV file must be provided in the 'file' form field").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ds, report, err := c.datasetService.Import(ctx, ctx.PostForm("name"), file)
	if err != nil {
		if errors.Is(err, apperrors.ErrDatasetInvalid) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatasetInvalid, "Dataset failed validation")
			errorDetail = errorDetail.WithDetails(report)
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Data: dto.ImportResponse{
			Dataset: dto.NewDatasetResponse(ds),
			Report:  report,
		},
		Timestamp: time.Now(),
	})
}

// ListDatasets retrieves all datasets
// @Summary List datasets
// @Description Retrieves all imported datasets
// @Tags datasets
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DatasetResponse} "Datasets retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets [get]
func (c *DatasetController) ListDatasets(ctx *gin.Context) {
	datasets, err := c.datasetService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.DatasetResponse, 0, len(datasets))
	for _, ds := range datasets {
		responses = append(responses, dto.NewDatasetResponse(ds))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetDataset retrieves a dataset by ID
// @Summary Get dataset by ID
// @Description Retrieves a specific dataset including its faculty list
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.DatasetResponse} "Dataset retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid dataset ID"
// @Failure 404 {object} dto.ErrorResponse "Dataset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets/{id} [get]
func (c *DatasetController) GetDataset(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	ds, err := c.datasetService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewDatasetResponse(ds),
		Timestamp: time.Now(),
	})
}

// PreviewDataset returns the first rows of a dataset
// @Summary Preview dataset rows
// @Description Returns the first rows of a dataset along with the ordered faculty list
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID" Format(uuid)
// @Param rows query int false "Number of rows to return" default(5) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PreviewResponse} "Preview retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid dataset ID"
// @Failure 404 {object} dto.ErrorResponse "Dataset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets/{id}/preview [get]
func (c *DatasetController) PreviewDataset(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	rows, _ := strconv.Atoi(ctx.DefaultQuery("rows", "5"))

	students, faculty, err := c.datasetService.Preview(ctx, id, rows)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewPreviewResponse(faculty, students),
		Timestamp: time.Now(),
	})
}

// RenameDataset updates a dataset's display name
// @Summary Rename a dataset
// @Description Updates the display name of an existing dataset
// @Tags datasets
// @Accept json
// @Produce json
// @Param id path string true "Dataset ID" Format(uuid)
// @Param request body dto.RenameDatasetRequest true "New dataset name"
// @Success 200 {object} dto.APIResponse{data=dto.DatasetResponse} "Dataset renamed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Dataset not found"
// @Failure 409 {object} dto.ErrorResponse "Dataset with this name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets/{id} [put]
func (c *DatasetController) RenameDataset(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RenameDatasetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.datasetService.Rename(ctx, id, req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ds, err := c.datasetService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewDatasetResponse(ds),
		Timestamp: time.Now(),
	})
}

// DeleteDataset deletes a dataset
// @Summary Delete a dataset
// @Description Deletes a dataset together with its rows and allocation run history
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID" Format(uuid)
// @Success 204 "Dataset deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid dataset ID"
// @Failure 404 {object} dto.ErrorResponse "Dataset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /datasets/{id} [delete]
func (c *DatasetController) DeleteDataset(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.datasetService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
