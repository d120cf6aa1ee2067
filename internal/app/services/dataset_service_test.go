package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facalloc/internal/pkg/apperrors"
)

const validCSV = `Roll,Name,Email,CGPA,Dr. Rao,Dr. Iyer
21CS001,Anita,anita@school.edu,9.2,1,2
21CS002,Bharat,bharat@school.edu,8.7,2,1
`

const duplicateRollCSV = `Roll,Name,Email,CGPA,Dr. Rao,Dr. Iyer
21CS001,Anita,anita@school.edu,9.2,1,2
21CS001,Bharat,bharat@school.edu,8.7,2,1
`

func newDatasetFixture() (DatasetService, *fakeDatasetStore, *fakeStorage) {
	datasets := newFakeDatasetStore()
	storage := &fakeStorage{}
	return NewDatasetService(datasets, storage), datasets, storage
}

func TestDatasetService_Import(t *testing.T) {
	svc, datasets, storage := newDatasetFixture()
	file := multipartFile(t, "intake.csv", validCSV)

	ds, report, err := svc.Import(context.Background(), "CSE intake", file)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "CSE intake", ds.Name)
	assert.Equal(t, 2, ds.StudentCount)
	assert.Equal(t, []string{"Dr. Rao", "Dr. Iyer"}, ds.Faculty)

	assert.Contains(t, datasets.datasets, ds.ID)
	assert.Len(t, storage.saved, 1, "original upload must be stored")
}

func TestDatasetService_Import_DefaultsNameToFilename(t *testing.T) {
	svc, _, _ := newDatasetFixture()
	file := multipartFile(t, "spring-2026.csv", validCSV)

	ds, _, err := svc.Import(context.Background(), "  ", file)
	require.NoError(t, err)

	assert.Equal(t, "spring-2026", ds.Name)
}

func TestDatasetService_Import_HardIssuesBlock(t *testing.T) {
	svc, datasets, _ := newDatasetFixture()
	file := multipartFile(t, "bad.csv", duplicateRollCSV)

	_, report, err := svc.Import(context.Background(), "bad", file)

	require.ErrorIs(t, err, apperrors.ErrDatasetInvalid)
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Issues)
	assert.Contains(t, report.Issues[0], "duplicate roll number")
	assert.Empty(t, datasets.datasets, "invalid dataset must not be persisted")
}

func TestDatasetService_Import_SoftWarningsRideAlong(t *testing.T) {
	svc, _, _ := newDatasetFixture()
	csv := `Roll,Name,Email,CGPA,Dr. Rao,Dr. Iyer
21CS001,Anita,not-an-email,9.2,1,9
`
	file := multipartFile(t, "warn.csv", csv)

	ds, report, err := svc.Import(context.Background(), "warn", file)
	require.NoError(t, err, "soft warnings must not block the import")

	require.NotNil(t, ds)
	assert.True(t, report.Valid)
	require.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0], "invalid preference 9")
	assert.Contains(t, report.Warnings[1], "malformed email")
}

func TestDatasetService_Import_UnparsableFile(t *testing.T) {
	svc, _, _ := newDatasetFixture()
	file := multipartFile(t, "garbage.csv", "Roll,Name\nonly,two\n")

	_, _, err := svc.Import(context.Background(), "garbage", file)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDatasetService_PreviewAndRename(t *testing.T) {
	svc, datasets, _ := newDatasetFixture()
	id := seedDataset(datasets, serviceStudents(), []string{"X", "Y", "Z"})

	students, faculty, err := svc.Preview(context.Background(), id, 2)
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, []string{"X", "Y", "Z"}, faculty)

	// Default preview size applies when rows is not positive.
	students, _, err = svc.Preview(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Len(t, students, 5)

	require.NoError(t, svc.Rename(context.Background(), id, "renamed"))
	assert.Equal(t, "renamed", datasets.datasets[id].Name)

	err = svc.Rename(context.Background(), id, "x")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDatasetService_Delete(t *testing.T) {
	svc, datasets, storage := newDatasetFixture()
	id := seedDataset(datasets, serviceStudents(), []string{"X", "Y", "Z"})
	datasets.datasets[id].FilePath = "uploads/seeded.csv"

	require.NoError(t, svc.Delete(context.Background(), id))

	assert.Empty(t, datasets.datasets)
	assert.Equal(t, []string{"uploads/seeded.csv"}, storage.deleted)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrDatasetNotFound)
}
