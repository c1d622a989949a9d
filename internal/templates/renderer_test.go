package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererRender(t *testing.T) {
	r, err := NewRenderer(map[string]string{"greet": "Hello {{.Name}}"})
	require.NoError(t, err)

	out, err := r.Render("greet", map[string]string{"Name": "Patient"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Patient", out)

	_, err = r.Render("greet", map[string]string{"Other": "x"})
	assert.Error(t, err, "expected error for missing key")

	_, err = r.Render("missing", nil)
	assert.Error(t, err)
}

func TestNewRendererRejectsBadSources(t *testing.T) {
	_, err := NewRenderer(nil)
	assert.Error(t, err)

	_, err = NewRenderer(map[string]string{"empty": ""})
	assert.Error(t, err)

	_, err = NewRenderer(map[string]string{"broken": "Hello {{.Name"})
	assert.Error(t, err)
}

func TestRendererHas(t *testing.T) {
	r, err := NewRenderer(map[string]string{"a": "x"})
	require.NoError(t, err)
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("b"))

	var nilRenderer *Renderer
	assert.False(t, nilRenderer.Has("a"))
}
