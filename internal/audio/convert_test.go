package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeraAssistant/internal/apperror"
)

func TestConverter_DisabledPassesThrough(t *testing.T) {
	c := NewConverter("")
	assert.False(t, c.Enabled())

	got, err := c.ToWAV(context.Background(), "/data/clip.webm")
	require.NoError(t, err)
	assert.Equal(t, "/data/clip.webm", got)
}

func TestConverter_MissingBinary(t *testing.T) {
	src := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	_, err := NewConverter(filepath.Join(t.TempDir(), "no-ffmpeg")).ToWAV(context.Background(), src)
	require.Error(t, err)
	assert.False(t, apperror.IsFatal(err), "a missing binary is a server problem, not bad audio")
}

func TestConverter_CorruptInputIsFatal(t *testing.T) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}
	src := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(src, []byte("definitely not audio"), 0o644))

	_, err = NewConverter(ffmpeg).ToWAV(context.Background(), src)
	require.Error(t, err)
	assert.True(t, apperror.IsFatal(err))
}
