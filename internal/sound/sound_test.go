//go:build !ci

package sound

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	silence := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	})
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(100, silence), format))
}

func TestLoadSoundFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, CueMove+".wav"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CueCheck+".wav"), []byte("not audio"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	sm := NewSoundManager(dir)
	require.NoError(t, sm.loadSoundFiles())

	assert.True(t, sm.Has(CueMove))
	assert.False(t, sm.Has(CueCheck))
	assert.False(t, sm.Has("readme"))
}

func TestLoadSoundFiles_MissingDir(t *testing.T) {
	t.Parallel()

	sm := NewSoundManager(filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, sm.loadSoundFiles())
	assert.False(t, sm.Has(CueMove))
}

func TestPlay_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, CueGameOver+".wav"))

	sm := NewSoundManager(dir)
	require.NoError(t, sm.loadSoundFiles())

	// the speaker was never initialised; Play must not reach it
	sm.Play(CueGameOver)
	sm.Play("unknown")
	sm.Close()
	sm.Play(CueGameOver)
}
