package dto

import (
	"time"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/app/models"
)

// DatasetResponse summarizes one uploaded dataset
type DatasetResponse struct {
	ID           string    `json:"id" example:"7b0f9a4e-3f6e-4a57-9d35-8f1f6f6d9f10"`
	Name         string    `json:"name" example:"CSE 2025 intake"`
	StudentCount int       `json:"studentCount" example:"184"`
	FacultyCount int       `json:"facultyCount" example:"12"`
	Faculty      []string  `json:"faculty,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ImportResponse is returned after a dataset upload: the stored dataset
// plus the validation report produced during import. Soft warnings arrive
// here rather than failing the upload.
type ImportResponse struct {
	Dataset DatasetResponse   `json:"dataset"`
	Report  allocation.Report `json:"report"`
}

// RenameDatasetRequest renames a dataset
type RenameDatasetRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=2,max=100" example:"CSE 2025 intake (final)"`
}

// StudentRow is one student in a dataset preview
type StudentRow struct {
	Roll        string         `json:"roll" example:"21CS001"`
	Name        string         `json:"name" example:"Anita Desai"`
	Email       string         `json:"email" example:"anita@school.edu"`
	Merit       float64        `json:"merit" example:"9.2"`
	Preferences map[string]int `json:"preferences"`
}

// PreviewResponse carries the first rows of a dataset
type PreviewResponse struct {
	Faculty  []string     `json:"faculty"`
	Students []StudentRow `json:"students"`
}

// NewDatasetResponse maps a dataset model to its response form
func NewDatasetResponse(ds *models.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:           ds.ID.String(),
		Name:         ds.Name,
		StudentCount: ds.StudentCount,
		FacultyCount: ds.FacultyCount,
		Faculty:      ds.Faculty,
		CreatedAt:    ds.CreatedAt,
	}
}

// NewPreviewResponse maps dataset rows into the preview form
func NewPreviewResponse(faculty []string, students []allocation.Student) PreviewResponse {
	rows := make([]StudentRow, 0, len(students))
	for _, s := range students {
		rows = append(rows, StudentRow{
			Roll:        s.Roll,
			Name:        s.Name,
			Email:       s.Email,
			Merit:       s.Merit,
			Preferences: s.Preferences,
		})
	}
	return PreviewResponse{Faculty: faculty, Students: rows}
}
