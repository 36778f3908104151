package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "report.html", "patients.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestFormatConfidence(t *testing.T) {
	c := 95.5
	assert.Equal(t, "95.50%", formatConfidence(&c))
	assert.Equal(t, "N/A", formatConfidence(nil))
}

func TestRenderPatients_Empty(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "patients.html", map[string]interface{}{}))
	assert.Contains(t, buf.String(), "No records yet.")
}
