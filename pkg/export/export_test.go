package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title: "Event popularity",
		Columns: []Column{
			{Key: "event_id", Label: "Event"},
			{Key: "registrations", Label: "Registrations"},
			{Key: "venue"},
		},
		Rows: []map[string]string{
			{"event_id": "C1-EVT001", "registrations": "42", "venue": "Hall, North"},
			{"event_id": "C1-EVT002"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Event,Registrations,venue\nC1-EVT001,42,\"Hall, North\"\nC1-EVT002,,\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVExporterEscapesFormulas(t *testing.T) {
	data := Dataset{
		Columns: []Column{{Key: "comment", Label: "Comment"}},
		Rows: []map[string]string{
			{"comment": "=HYPERLINK(\"http://x\")"},
			{"comment": "@SUM(A1)"},
			{"comment": "-3.5"},
			{"comment": "-not a number"},
			{"comment": "great talk"},
		},
	}
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Comment\n\"'=HYPERLINK(\"\"http://x\"\")\"\n'@SUM(A1)\n-3.5\n'-not a number\ngreat talk\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRendererFor(t *testing.T) {
	r, err := RendererFor(FormatPDF)
	require.NoError(t, err)
	assert.IsType(t, &PDFExporter{}, r)
	assert.Equal(t, "text/csv", FormatCSV.ContentType())

	_, err = RendererFor(Format("xlsx"))
	assert.Error(t, err)
	assert.False(t, Format("xlsx").Valid())
}

func TestTruncate(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	assert.Len(t, []rune(truncate(long)), maxCellRunes)
	assert.Equal(t, "short", truncate("short"))
}
