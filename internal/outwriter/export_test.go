package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleMatrix builds O1 (10, 10) and O2 (1, 1) over two criteria of weight 5.
func exampleMatrix(t *testing.T) *core.Matrix {
	t.Helper()
	m := core.NewMatrix(core.WithIDGenerator(core.SequentialIDs()))
	o1 := m.AddOption("O1")
	o2 := m.AddOption("O2")
	price := m.AddCriterion("Price", 5)
	quality := m.AddCriterion("Quality", 5)
	m.SetRating(o1, price, 10)
	m.SetRating(o1, quality, 10)
	m.SetRating(o2, price, 1)
	m.SetRating(o2, quality, 1)
	return m
}

func TestExportJSON(t *testing.T) {
	t.Run("full state round trips", func(t *testing.T) {
		m := exampleMatrix(t)
		content, meta, err := ExportJSON(m)
		require.NoError(t, err)
		assert.Equal(t, jsonExportMeta, meta)
		assert.Contains(t, content, "\n  \"options\": [", "uses a 2-space indent")

		var decoded schema.State
		require.NoError(t, json.Unmarshal([]byte(content), &decoded))
		if diff := cmp.Diff(m.Snapshot(), decoded); diff != "" {
			t.Errorf("exported state mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty matrix", func(t *testing.T) {
		content, _, err := ExportJSON(core.NewMatrix())
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"options\": [],\n  \"criteria\": [],\n  \"ratings\": {},\n  \"weights\": {}\n}", content)
	})

	t.Run("html is not escaped", func(t *testing.T) {
		m := core.NewMatrix()
		m.AddOption("<A & B>")
		content, _, err := ExportJSON(m)
		require.NoError(t, err)
		assert.Contains(t, content, "<A & B>")
	})
}

func TestExportCSV(t *testing.T) {
	t.Run("example matrix", func(t *testing.T) {
		content, meta, err := ExportCSV(exampleMatrix(t))
		require.NoError(t, err)
		assert.Equal(t, csvExportMeta, meta)
		assert.Equal(t,
			"Option,Price (Weight: 5),Quality (Weight: 5),Total Score,Percentage\n"+
				"O1,10,10,100.0,100.0%\n"+
				"O2,1,1,10.0,10.0%\n",
			content)
	})

	t.Run("option order is kept", func(t *testing.T) {
		m := core.NewMatrix()
		m.AddCriterion("C", 1)
		m.AddOption("Low")
		high := m.AddOption("High")
		m.SetRating(high, m.Criteria()[0].ID, 9)

		content, _, err := ExportCSV(m)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(content), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[1], "Low,0,"), "missing rating exports as 0: %s", lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "High,9,"))
	})

	t.Run("quoting", func(t *testing.T) {
		tests := []struct {
			name     string
			expected string
		}{
			{"Opt, A", `"Opt, A"`},
			{`Say "hi"`, `"Say ""hi"""`},
			{"two\nlines", "\"two\nlines\""},
			{"plain", "plain"},
		}
		for _, tt := range tests {
			m := core.NewMatrix()
			m.AddOption(tt.name)
			m.AddCriterion("C", 5)

			content, _, err := ExportCSV(m)
			require.NoError(t, err)
			assert.Contains(t, content, "\n"+tt.expected+",5,25.0,50.0%\n")

			records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
			require.NoError(t, err)
			assert.Equal(t, tt.name, records[1][0])
		}
	})

	t.Run("fractional weights", func(t *testing.T) {
		m := core.NewMatrix()
		m.AddCriterion("Cost, total", 2.5)
		content, _, err := ExportCSV(m)
		require.NoError(t, err)
		assert.Equal(t, "Option,\"Cost, total (Weight: 2.5)\",Total Score,Percentage\n", content)
	})

	t.Run("empty matrix", func(t *testing.T) {
		content, _, err := ExportCSV(core.NewMatrix())
		require.NoError(t, err)
		assert.Equal(t, "Option,Total Score,Percentage\n", content)
	})
}

func TestExportText(t *testing.T) {
	t.Run("fixed layout", func(t *testing.T) {
		content, meta, err := ExportText(exampleMatrix(t))
		require.NoError(t, err)
		assert.Equal(t, textExportMeta, meta)

		expected := `Decision Matrix Report
======================

Criteria:
- Price (Weight: 5)
- Quality (Weight: 5)

Options:
- O1
    Price: 10
    Quality: 10
- O2
    Price: 1
    Quality: 1

Results:
1. O1: 100.0 / 100.0 (100.0%) Excellent
2. O2: 10.0 / 100.0 (10.0%) Poor
`
		assert.Equal(t, expected, content)
	})

	t.Run("section order", func(t *testing.T) {
		content, _, err := ExportText(exampleMatrix(t))
		require.NoError(t, err)
		criteria := strings.Index(content, "Criteria:")
		options := strings.Index(content, "Options:")
		results := strings.Index(content, "Results:")
		assert.Less(t, criteria, options)
		assert.Less(t, options, results)
	})

	t.Run("empty input", func(t *testing.T) {
		m := core.NewMatrix()
		m.AddOption("Lonely")
		content, _, err := ExportText(m)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(content, "Results:\nAdd options and criteria first\n"))
	})
}

func TestExport(t *testing.T) {
	m := exampleMatrix(t)
	for format, meta := range map[schema.ExportFormat]schema.ExportMeta{
		schema.JSONExport: jsonExportMeta,
		schema.CSVExport:  csvExportMeta,
		schema.TextExport: textExportMeta,
	} {
		t.Run(string(format), func(t *testing.T) {
			content, got, err := Export(m, format)
			require.NoError(t, err)
			assert.NotEmpty(t, content)
			assert.Equal(t, meta, got)
		})
	}

	_, _, err := Export(m, schema.ExportFormat("xml"))
	assert.Error(t, err)
}
