package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

const sampleCSV = `# name;duration;predecessors
Inicio;0;
A;3;Inicio
B;2;A
C;4;A, B

Fim;0;C
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	want := []network.Record{
		{Name: "Inicio", Duration: 0},
		{Name: "A", Duration: 3, Predecessors: []string{"Inicio"}},
		{Name: "B", Duration: 2, Predecessors: []string{"A"}},
		{Name: "C", Duration: 4, Predecessors: []string{"A", "B"}},
		{Name: "Fim", Duration: 0, Predecessors: []string{"C"}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSV_TwoFields(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("A;3\nB;1;A\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Predecessors)
	assert.Equal(t, []string{"A"}, records[1].Predecessors)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing duration", "A\n", "line 1"},
		{"bad duration", "A;3\nB;x;A\n", "line 2: invalid duration for B"},
		{"empty name", ";3;\n", "empty activity name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`[
		{"name": "A", "duration": 3},
		{"name": "B", "duration": 2, "predecessors": ["A"]},
		{"name": "C", "duration": 0, "predecessors": "A, B"}
	]`)

	records, err := ParseJSON(data)
	require.NoError(t, err)

	want := []network.Record{
		{Name: "A", Duration: 3},
		{Name: "B", Duration: 2, Predecessors: []string{"A"}},
		{Name: "C", Duration: 0, Predecessors: []string{"A", "B"}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON_Wrapped(t *testing.T) {
	records, err := ParseJSON([]byte(`{"activities": [{"name": "A", "duration": 1}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].Name)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid", `[{"name": }]`, "invalid JSON"},
		{"not an array", `{"name": "A"}`, "expected an array"},
		{"missing name", `[{"duration": 1}]`, "activity 1: missing name"},
		{"fractional duration", `[{"name": "A", "duration": 1.5}]`, "duration must be an integer"},
		{"string duration", `[{"name": "A", "duration": "3"}]`, "duration must be an integer"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))

	n, err := Load(csvPath, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 5, n.Len())

	jsonPath := filepath.Join(dir, "plan.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"name":"A","duration":1},{"name":"B","duration":1,"predecessors":["Z"]}]`), 0644))

	_, err = Load(jsonPath, FormatAuto)
	assert.True(t, errors.Is(err, network.ErrUnknownPredecessor), "got %v", err)

	_, err = Load(filepath.Join(dir, "missing.csv"), FormatCSV)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "CSV": FormatCSV, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xlsx")
	assert.Error(t, err)

	assert.Equal(t, FormatJSON, DetectFormat("a/b.json"))
	assert.Equal(t, FormatCSV, DetectFormat("data.txt"))
}
