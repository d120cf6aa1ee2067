package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facalloc/internal/app/allocation"
)

const sampleCSV = `Roll,Name,Email,CGPA,Dr. Rao,Dr. Iyer,Dr. Khan
21CS001,Anita,anita@school.edu,9.2,1,2,3
21CS002,Bharat,bharat@school.edu,8.7,2,1,3
21CS003,Chitra,chitra@school.edu,8.1,3,,1
`

func TestRead(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Dr. Rao", "Dr. Iyer", "Dr. Khan"}, ds.Faculty,
		"faculty list must preserve column order")
	require.Len(t, ds.Students, 3)

	first := ds.Students[0]
	assert.Equal(t, "21CS001", first.Roll)
	assert.Equal(t, "Anita", first.Name)
	assert.Equal(t, "anita@school.edu", first.Email)
	assert.Equal(t, 9.2, first.Merit)
	assert.Equal(t, map[string]int{"Dr. Rao": 1, "Dr. Iyer": 2, "Dr. Khan": 3}, first.Preferences)

	// Empty cell means no stated preference for that faculty.
	third := ds.Students[2]
	_, stated := third.Preferences["Dr. Iyer"]
	assert.False(t, stated)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty file", "", "empty"},
		{"bad header", "Id,Name,Email,CGPA,X\n", "column 1"},
		{"missing base columns", "Roll,Name\n", "header must start with"},
		{"empty faculty column", "Roll,Name,Email,CGPA,\n", "empty name"},
		{"bad merit", "Roll,Name,Email,CGPA,X\nr1,n,e,abc,1\n", "invalid CGPA"},
		{"bad rank", "Roll,Name,Email,CGPA,X\nr1,n,e,8.0,first\n", "invalid preference"},
		{"empty roll", "Roll,Name,Email,CGPA,X\n,n,e,8.0,1\n", "roll number is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteAllocations(t *testing.T) {
	rows := []AllocationRow{
		{Roll: "21CS001", Name: "Anita", Email: "anita@school.edu", Merit: 9.2, Allocated: "Dr. Rao"},
		{Roll: "21CS002", Name: "Bharat", Email: "bharat@school.edu", Merit: 8.7, Allocated: allocation.Unallocated},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAllocations(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Roll,Name,Email,CGPA,Allocated", lines[0])
	assert.Equal(t, "21CS001,Anita,anita@school.edu,9.2,Dr. Rao", lines[1])
	assert.Equal(t, "21CS002,Bharat,bharat@school.edu,8.7,UNALLOCATED", lines[2])
}

func TestWriteHistogram(t *testing.T) {
	faculty := []string{"X", "Y"}
	counts := [][]int{{2, 0}, {1, 1}}

	var buf bytes.Buffer
	require.NoError(t, WriteHistogram(&buf, faculty, counts))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Fac,Count Pref 1,Count Pref 2", lines[0])
	assert.Equal(t, "X,2,0", lines[1])
	assert.Equal(t, "Y,1,1", lines[2])
}

func TestRowsFromResult(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	engine, err := allocation.NewEngine(ds.Students, ds.Faculty)
	require.NoError(t, err)
	result := engine.Allocate()

	rows := RowsFromResult(ds.Students, result)

	require.Len(t, rows, 3)
	// Input order preserved regardless of merit order.
	assert.Equal(t, "21CS001", rows[0].Roll)
	assert.Equal(t, "21CS003", rows[2].Roll)
	for _, row := range rows {
		assert.NotEmpty(t, row.Allocated)
	}
}
