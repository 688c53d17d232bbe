package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	data := Dataset{
		Headers: []string{"Student", "Score"},
		Rows: []map[string]string{
			{"Student": "Alice", "Score": "91.0"},
			{"Student": "Bob", "Score": "68.5"},
		},
	}

	pdf, err := exporter.Render(data, "Grade sheet - Midterm")
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPDFExporterRenderEmptyDataset(t *testing.T) {
	exporter := NewPDFExporter()

	pdf, err := exporter.Render(Dataset{Headers: []string{"Student"}}, "Empty")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
