package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func TestNewValidates(t *testing.T) {
	_, err := New(0, 600, 60, "out.mp4", "")
	assert.Error(t, err)
	_, err = New(800, 600, 0, "out.mp4", "")
	assert.Error(t, err)
	_, err = New(800, 600, 60, "", "")
	assert.Error(t, err)
}

func TestArgs(t *testing.T) {
	r, err := New(800, 600, 30, "out.mp4", "")
	require.NoError(t, err)

	assert.Equal(t, ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       "800x600",
		"r":       "30",
	}, r.inputArgs())
	assert.Equal(t, "vflip", r.outputArgs()["vf"])
	assert.Equal(t, 800*600*4, r.FrameSize())
}

func TestWriteFrameChecks(t *testing.T) {
	r, err := New(4, 2, 30, "out.mp4", "")
	require.NoError(t, err)

	assert.Error(t, r.WriteFrame(make([]byte, 3)), "wrong size")
	assert.Error(t, r.WriteFrame(make([]byte, r.FrameSize())), "not started")
	assert.Zero(t, r.Frames())
	assert.NoError(t, r.Close(), "closing an unstarted recorder is a no-op")
}

func TestCloseAfterFailedStart(t *testing.T) {
	r, err := New(4, 2, 30, filepath.Join(t.TempDir(), "out.mp4"), filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	require.NoError(t, err)
	require.Error(t, r.Start())

	closed := make(chan error, 1)
	go func() { closed <- r.Close() }()
	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Close blocked after a failed Start")
	}

	assert.Error(t, r.WriteFrame(make([]byte, r.FrameSize())), "not started")
	assert.Error(t, r.Start(), "ffmpeg is still missing")
}
