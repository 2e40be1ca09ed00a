package recorder

import (
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Recorder pipes raw RGBA frames, bottom row first as glReadPixels returns
// them, into an ffmpeg process that encodes them to a video file.
type Recorder struct {
	width, height int
	fps           int
	output        string
	ffmpegPath    string

	pipeWriter *io.PipeWriter
	cmd        *exec.Cmd
	done       chan error
	frames     int
}

// New prepares a recorder. Nothing is started until Start.
func New(width, height, fps int, output, ffmpegPath string) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid recording size %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid recording fps %d", fps)
	}
	if output == "" {
		return nil, fmt.Errorf("no output file specified")
	}
	return &Recorder{
		width:      width,
		height:     height,
		fps:        fps,
		output:     output,
		ffmpegPath: ffmpegPath,
	}, nil
}

func (r *Recorder) inputArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", r.width, r.height),
		"r":       strconv.Itoa(r.fps),
	}
}

func (r *Recorder) outputArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		// GL rows start at the bottom.
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"c:v":     "libx264",
	}
}

// FrameSize is the number of bytes WriteFrame expects.
func (r *Recorder) FrameSize() int {
	return r.width * r.height * 4
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

// Start launches ffmpeg.
func (r *Recorder) Start() error {
	if r.cmd != nil {
		return fmt.Errorf("recorder already started")
	}
	pipeReader, pipeWriter := io.Pipe()

	stream := ffmpeg.Input("pipe:", r.inputArgs()).
		Output(r.output, r.outputArgs()).
		OverWriteOutput().
		WithInput(pipeReader).
		ErrorToStdOut()
	if r.ffmpegPath != "" {
		stream.SetFfmpegPath(r.ffmpegPath)
	}
	cmd := stream.Compile()
	if err := cmd.Start(); err != nil {
		pipeWriter.Close()
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// Close waits on done, so it is only set once ffmpeg is running.
	r.cmd = cmd
	r.pipeWriter = pipeWriter
	r.done = make(chan error, 1)
	go func() {
		err := cmd.Wait()
		// Unblock a writer stuck on a dead process.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		r.done <- err
	}()
	log.Printf("Recording %dx%d @ %d fps to %s", r.width, r.height, r.fps, r.output)
	return nil
}

// WriteFrame sends one frame to ffmpeg.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if len(pixels) != r.FrameSize() {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), r.FrameSize())
	}
	if r.pipeWriter == nil {
		return fmt.Errorf("recorder not started")
	}
	if _, err := r.pipeWriter.Write(pixels); err != nil {
		return fmt.Errorf("error writing to ffmpeg pipe: %w", err)
	}
	r.frames++
	return nil
}

// Frames is the number of frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close ends the stream and waits for ffmpeg to finish encoding.
func (r *Recorder) Close() error {
	if r.cmd == nil {
		return nil
	}
	r.pipeWriter.Close()
	err := <-r.done
	r.cmd = nil
	r.pipeWriter = nil
	if err != nil {
		return fmt.Errorf("ffmpeg finished with error: %w", err)
	}
	log.Printf("Wrote %d frames to %s", r.frames, r.output)
	return nil
}
