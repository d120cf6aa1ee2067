package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/yigit/facalloc/internal/app/allocation"
)

// Dataset is one uploaded preference file: the student records, their
// preference table and the canonical faculty column order. Datasets are
// immutable after import apart from their display name; every allocation
// run loads the rows fresh.
type Dataset struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	FilePath     string    `json:"filePath" db:"file_path"` // Stored copy of the original upload
	StudentCount int       `json:"studentCount" db:"student_count"`
	FacultyCount int       `json:"facultyCount" db:"faculty_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Faculty  []string             `json:"faculty,omitempty"`
	Students []allocation.Student `json:"students,omitempty"`
}
