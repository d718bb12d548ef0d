package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeToDecibels(t *testing.T) {
	assert.InDelta(t, 0, volumeToDecibels(1.0), 1e-9)
	assert.InDelta(t, -1, volumeToDecibels(0.5), 1e-9)
	assert.InDelta(t, -2, volumeToDecibels(0.25), 1e-9)
	assert.Equal(t, -10.0, volumeToDecibels(0))
	assert.Equal(t, -10.0, volumeToDecibels(-1))
}

func TestSetVolumeClamps(t *testing.T) {
	p := NewPlayer(nil)

	p.SetVolume(1.5)
	assert.Equal(t, 1.0, p.volume)

	p.SetVolume(-0.2)
	assert.Equal(t, 0.0, p.volume)

	p.SetVolume(0.8)
	assert.Equal(t, 0.8, p.volume)
}

func TestPlayEmptyPathIsNoop(t *testing.T) {
	p := NewPlayer(nil)
	assert.NoError(t, p.Play(""))
}

func TestLoadSoundErrors(t *testing.T) {
	p := NewPlayer(nil)

	_, err := p.loadSound("/nonexistent/chime.wav")
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "chime.flac")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0600))

	_, err = p.loadSound(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported audio format")
}
