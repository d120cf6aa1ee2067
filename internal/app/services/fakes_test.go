package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facalloc/internal/app/allocation"
	"github.com/yigit/facalloc/internal/app/models"
	"github.com/yigit/facalloc/internal/app/repositories"
)

// fakeDatasetStore keeps datasets in memory for service tests.
type fakeDatasetStore struct {
	datasets map[uuid.UUID]*models.Dataset
}

func newFakeDatasetStore() *fakeDatasetStore {
	return &fakeDatasetStore{datasets: make(map[uuid.UUID]*models.Dataset)}
}

func (f *fakeDatasetStore) CreateDataset(_ context.Context, ds *models.Dataset) error {
	f.datasets[ds.ID] = ds
	return nil
}

func (f *fakeDatasetStore) GetDatasetByID(_ context.Context, id uuid.UUID) (*models.Dataset, error) {
	ds, ok := f.datasets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return ds, nil
}

func (f *fakeDatasetStore) ListDatasets(_ context.Context) ([]*models.Dataset, error) {
	out := []*models.Dataset{}
	for _, ds := range f.datasets {
		out = append(out, ds)
	}
	return out, nil
}

func (f *fakeDatasetStore) LoadStudents(_ context.Context, id uuid.UUID) ([]allocation.Student, []string, error) {
	ds, ok := f.datasets[id]
	if !ok {
		return nil, nil, repositories.ErrNotFound
	}
	return ds.Students, ds.Faculty, nil
}

func (f *fakeDatasetStore) RenameDataset(_ context.Context, id uuid.UUID, name string) error {
	ds, ok := f.datasets[id]
	if !ok {
		return repositories.ErrNotFound
	}
	ds.Name = name
	return nil
}

func (f *fakeDatasetStore) DeleteDataset(_ context.Context, id uuid.UUID) error {
	if _, ok := f.datasets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.datasets, id)
	return nil
}

// fakeRunStore keeps allocation runs in memory.
type fakeRunStore struct {
	runs map[uuid.UUID]*models.AllocationRun
}

func newFakeRunStore() *fakeRunStore {
	return &fakeRunStore{runs: make(map[uuid.UUID]*models.AllocationRun)}
}

func (f *fakeRunStore) CreateRun(_ context.Context, run *models.AllocationRun) error {
	f.runs[run.ID] = run
	return nil
}

func (f *fakeRunStore) GetRunByID(_ context.Context, id uuid.UUID) (*models.AllocationRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return run, nil
}

func (f *fakeRunStore) ListRunsByDataset(_ context.Context, datasetID uuid.UUID) ([]*models.AllocationRun, error) {
	out := []*models.AllocationRun{}
	for _, run := range f.runs {
		if run.DatasetID == datasetID {
			out = append(out, run)
		}
	}
	return out, nil
}

// fakeStorage records stored files without touching the filesystem.
type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) SaveFile(fh *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fh, "")
}

func (f *fakeStorage) SaveFileWithPath(fh *multipart.FileHeader, _ string) (string, error) {
	path := "uploads/" + fh.Filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) DeleteFile(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) GetFullPath(fileURL string) string {
	return fileURL
}

// multipartFile wraps raw bytes into a *multipart.FileHeader the way gin
// would hand one to a controller.
func multipartFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	reader := multipart.NewReader(&buf, mw.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

// seedDataset stores a ready-made dataset and returns its ID.
func seedDataset(store *fakeDatasetStore, students []allocation.Student, faculty []string) uuid.UUID {
	id := uuid.New()
	store.datasets[id] = &models.Dataset{
		ID:           id,
		Name:         "seeded",
		StudentCount: len(students),
		FacultyCount: len(faculty),
		Faculty:      faculty,
		Students:     students,
	}
	return id
}
