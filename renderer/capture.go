package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// readPixels copies the lower-left width x height region of the back buffer
// into buf as tightly packed RGBA, bottom row first.
func readPixels(width, height int, buf []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
}

// recordingFrames is how many frames make up a recording of the given length.
func recordingFrames(duration float64, fps int) int {
	n := int(duration*float64(fps) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

func (r *Renderer) captureFrame() error {
	width, height := r.recorder.Size()
	if r.frameBuf == nil {
		r.frameBuf = make([]byte, r.recorder.FrameSize())
	}
	readPixels(width, height, r.frameBuf)
	return r.recorder.WriteFrame(r.frameBuf)
}
