package renderer

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/learnopengl/graphics"
	options "github.com/richinsley/learnopengl/options"
	"github.com/richinsley/learnopengl/recorder"
	"github.com/richinsley/learnopengl/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContext struct {
	now         float64
	shouldClose bool
}

func (c *fakeContext) MakeCurrent()                                     {}
func (c *fakeContext) Shutdown()                                        {}
func (c *fakeContext) ShouldClose() bool                                { return c.shouldClose }
func (c *fakeContext) SetShouldClose(v bool)                            { c.shouldClose = v }
func (c *fakeContext) EndFrame()                                        {}
func (c *fakeContext) GetFramebufferSize() (int, int)                   { return 800, 600 }
func (c *fakeContext) Time() float64                                    { return c.now }
func (c *fakeContext) RegisterKeyCallback(key graphics.Key, f func())   {}
func (c *fakeContext) RegisterResizeCallback(f func(width, height int)) {}

func TestAdjustMix(t *testing.T) {
	assert.InDelta(t, 0.3, adjustMix(0.2, mixStep), 1e-6)
	assert.InDelta(t, 0.1, adjustMix(0.2, -mixStep), 1e-6)
	assert.Equal(t, float32(1), adjustMix(0.95, mixStep))
	assert.Equal(t, float32(0), adjustMix(0.05, -mixStep))
}

func TestRecordingFrames(t *testing.T) {
	assert.Equal(t, 600, recordingFrames(10, 60))
	assert.Equal(t, 45, recordingFrames(1.5, 30))
	assert.Equal(t, 1, recordingFrames(0.001, 30))
}

func TestFrameTime(t *testing.T) {
	opts := options.Default()
	ctx := &fakeContext{now: 12.5}
	r := &Renderer{context: ctx, opts: &opts}

	assert.Equal(t, 2.5, r.frameTime(10))

	rec, err := recorder.New(800, 600, 50, "out.mp4", "")
	require.NoError(t, err)
	opts.FPS = 50
	r.recorder = rec
	r.frameCount = 25
	assert.Equal(t, 0.5, r.frameTime(10), "recordings use the frame count, not the wall clock")
}

func TestToggleWireframe(t *testing.T) {
	opts := options.Default()
	r := &Renderer{opts: &opts}
	r.ToggleWireframe()
	assert.True(t, r.wireframe)
	r.ToggleWireframe()
	assert.False(t, r.wireframe)
}

func TestRunWithoutScene(t *testing.T) {
	opts := options.Default()
	r := &Renderer{context: &fakeContext{}, opts: &opts}
	assert.Error(t, r.Run())
}

func TestSetSceneValidates(t *testing.T) {
	opts := options.Default()
	r := &Renderer{context: &fakeContext{}, opts: &opts}
	assert.Error(t, r.SetScene(nil))
	assert.Error(t, r.SetScene(&Scene{Title: "empty"}))
}

const brokenFragment = "#version 330 core\n#error broken\nvoid main() {}\n"

func newTestRenderer(strict bool) (*Renderer, *stubDriver) {
	opts := options.Default()
	opts.Strict = strict
	d := newStubDriver()
	return &Renderer{
		context: &fakeContext{},
		opts:    &opts,
		loader:  shader.NewLoader(d),
	}, d
}

func quietLog(t *testing.T) {
	t.Helper()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
}

func TestBuildProgramStrictDeletesBrokenProgram(t *testing.T) {
	quietLog(t)
	r, d := newTestRenderer(true)

	prog, err := r.BuildProgram(shader.Sources{
		Vertex:   shader.NewSource("", []byte(shader.HelloTriangleVertex)),
		Fragment: shader.NewSource("", []byte(brokenFragment)),
	})
	require.Error(t, err)
	assert.Nil(t, prog)
	require.Len(t, d.deletedPrograms, 1)

	var be *shader.BuildError
	assert.True(t, errors.As(err, &be))
}

func TestBuildProgramKeepsBrokenProgramByDefault(t *testing.T) {
	quietLog(t)
	r, d := newTestRenderer(false)

	prog, err := r.BuildProgram(shader.Sources{
		Vertex:   shader.NewSource("", []byte(shader.HelloTriangleVertex)),
		Fragment: shader.NewSource("", []byte(brokenFragment)),
	})
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.False(t, prog.Linked())
	assert.Empty(t, d.deletedPrograms)
}

func TestReloadKeepsPreviousProgramOnFailure(t *testing.T) {
	quietLog(t)
	r, d := newTestRenderer(false)

	dir := t.TempDir()
	vp := filepath.Join(dir, "vertex.glsl")
	fp := filepath.Join(dir, "fragment.glsl")
	require.NoError(t, os.WriteFile(vp, []byte(shader.HelloTriangleVertex), 0644))
	require.NoError(t, os.WriteFile(fp, []byte(shader.HelloTriangleFragment), 0644))

	old, err := r.LoadProgram(vp, fp)
	require.NoError(t, err)
	require.True(t, old.Linked())
	oldID := old.ID()

	setups := 0
	r.scene = &Scene{Program: old, Setup: func(p *shader.Program) { setups++ }}

	require.NoError(t, os.WriteFile(fp, []byte(brokenFragment), 0644))
	r.reloadProgram(fp)

	assert.Same(t, old, r.scene.Program)
	assert.Equal(t, oldID, r.scene.Program.ID())
	require.Len(t, d.deletedPrograms, 1)
	assert.NotEqual(t, oldID, d.deletedPrograms[0], "only the failed rebuild is deleted")
	assert.Zero(t, setups)

	require.NoError(t, os.WriteFile(fp, []byte(shader.HelloTriangleFragment), 0644))
	r.reloadProgram(fp)

	assert.NotEqual(t, oldID, r.scene.Program.ID())
	assert.True(t, r.scene.Program.Linked())
	assert.Contains(t, d.deletedPrograms, oldID)
	assert.Equal(t, 1, setups)
	assert.Equal(t, r.scene.Program.ID(), d.current)
}
