package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"Gopher3DSky/internal/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParamFile(t *testing.T) {
	p := writeFile(t, "sky.toml", "elevation = 12\nexposure = 0.25\n")
	values, err := ReadParamFile(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"elevation": 12, "exposure": 0.25}, values)
}

func TestReadParamFileRejectsNonNumbers(t *testing.T) {
	p := writeFile(t, "sky.toml", "elevation = \"high\"\n")
	_, err := ReadParamFile(p)
	assert.Error(t, err)
}

func TestParamWatcherAppliesOnHostThread(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sky.toml")
	require.NoError(t, os.WriteFile(path, []byte("elevation = 30\nbogus = 1\n"), 0o644))

	store := params.NewDefault()
	var queue TaskQueue
	pw, err := NewParamWatcher(path, store, &queue)
	require.NoError(t, err)
	defer pw.Close()

	pw.Start()
	// The initial read is posted, not applied in place.
	assert.Equal(t, 5.0, store.Get(params.Elevation))
	queue.Drain()
	assert.Equal(t, 30.0, store.Get(params.Elevation))

	require.NoError(t, os.WriteFile(path, []byte("elevation = 45\nazimuth = 500\n"), 0o644))
	require.Eventually(t, func() bool {
		queue.Drain()
		return store.Get(params.Elevation) == 45
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 180.0, store.Get(params.Azimuth))
}

func TestParamWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sky.toml")

	store := params.NewDefault()
	var queue TaskQueue
	pw, err := NewParamWatcher(path, store, &queue)
	require.NoError(t, err)
	pw.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("elevation = 60\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	queue.Drain()
	assert.Equal(t, 5.0, store.Get(params.Elevation))
	assert.NoError(t, pw.Close())
}

func TestParamWatcherCloseWithoutStart(t *testing.T) {
	pw, err := NewParamWatcher(filepath.Join(t.TempDir(), "sky.toml"), params.NewDefault(), &TaskQueue{})
	require.NoError(t, err)
	assert.NoError(t, pw.Close())
}

func TestParamWatcherSkipsValuesThatClampToCurrent(t *testing.T) {
	store := params.NewDefault()
	sets := 0
	for _, name := range store.Names() {
		store.OnChange(name, func(string, float64) { sets++ })
	}
	pw, err := NewParamWatcher(filepath.Join(t.TempDir(), "sky.toml"), store, &TaskQueue{})
	require.NoError(t, err)
	defer pw.Close()

	values := map[string]float64{params.Azimuth: 500, params.Elevation: 120}
	pw.apply(values)
	assert.Equal(t, 1, sets)
	assert.Equal(t, 90.0, store.Get(params.Elevation))
	assert.Equal(t, 180.0, store.Get(params.Azimuth))

	pw.apply(values)
	assert.Equal(t, 1, sets)
}
