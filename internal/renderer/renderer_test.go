package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToneMapping(t *testing.T) {
	for _, tm := range []ToneMapping{NoToneMapping, ACESFilmicToneMapping} {
		got, err := ParseToneMapping(tm.String())
		require.NoError(t, err)
		assert.Equal(t, tm, got)
	}
	_, err := ParseToneMapping("reinhard")
	assert.Error(t, err)
}

func TestNewOpenGLRendererDefaults(t *testing.T) {
	rend := NewOpenGLRenderer(800, 600)
	assert.Equal(t, ACESFilmicToneMapping, rend.ToneMapping)
	assert.True(t, rend.FrustumCulling)
	assert.Equal(t, float32(1), rend.ToneMappingExposure())
}
