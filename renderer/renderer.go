package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/learnopengl/graphics"
	options "github.com/richinsley/learnopengl/options"
	"github.com/richinsley/learnopengl/recorder"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/translator"
	"github.com/richinsley/learnopengl/watch"
)

var glInitOnce sync.Once

const mixStep = 0.1

type Renderer struct {
	context  graphics.Context
	opts     *options.Options
	loader   *shader.Loader
	scene    *Scene
	watcher  *watch.Watcher
	recorder *recorder.Recorder
	frameBuf []byte

	wireframe  bool
	mix        float32
	frameCount int
}

// NewRenderer makes ctx current, loads the OpenGL entry points and wires the
// window callbacks (viewport resize, F1 wireframe, Up/Down mix).
func NewRenderer(ctx graphics.Context, opts *options.Options) (*Renderer, error) {
	r := &Renderer{
		context:   ctx,
		opts:      opts,
		wireframe: opts.Wireframe,
		mix:       float32(opts.Mix),
	}

	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r.loader = shader.NewLoader(shader.GLDriver{})
	r.loader.Preprocess = translator.Preprocess

	width, height := ctx.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	ctx.RegisterResizeCallback(func(w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
	})
	ctx.RegisterKeyCallback(graphics.KeyF1, r.ToggleWireframe)
	ctx.RegisterKeyCallback(graphics.KeyUp, func() { r.mix = adjustMix(r.mix, mixStep) })
	ctx.RegisterKeyCallback(graphics.KeyDown, func() { r.mix = adjustMix(r.mix, -mixStep) })

	if opts.Recording() {
		rec, err := recorder.New(width, height, opts.FPS, opts.OutputFile, opts.FFMPEGPath)
		if err != nil {
			return nil, err
		}
		r.recorder = rec
	}
	return r, nil
}

// Loader exposes the shader loader so callers can build programs from memory.
func (r *Renderer) Loader() *shader.Loader { return r.loader }

// BuildProgram compiles and links already-read sources. Without -strict a
// program that failed to build is kept and rendered anyway.
func (r *Renderer) BuildProgram(sources shader.Sources) (*shader.Program, error) {
	return r.accept(r.loader.Build(sources))
}

// LoadProgram reads and builds the shader pair at the given paths.
func (r *Renderer) LoadProgram(vertexPath, fragmentPath string) (*shader.Program, error) {
	prog, err := r.loader.Load(vertexPath, fragmentPath)
	if prog == nil {
		return nil, err
	}
	return r.accept(prog, err)
}

func (r *Renderer) accept(prog *shader.Program, err error) (*shader.Program, error) {
	if err == nil {
		return prog, nil
	}
	if r.opts.Strict {
		prog.Delete()
		return nil, err
	}
	log.Printf("Shader program %d did not build cleanly, rendering may be broken", prog.ID())
	return prog, nil
}

// SetScene installs the scene to draw and, with hot reload enabled, starts
// watching its shader files.
func (r *Renderer) SetScene(s *Scene) error {
	if s == nil || s.Program == nil || s.Mesh == nil {
		return fmt.Errorf("scene needs a program and a mesh")
	}
	r.scene = s
	r.setupProgram()

	if r.opts.HotReload && s.Program.VertexPath != "" && s.Program.FragmentPath != "" {
		w, err := watch.New(s.Program.VertexPath, s.Program.FragmentPath)
		if err != nil {
			return err
		}
		r.watcher = w
		log.Printf("Watching %s and %s for changes", s.Program.VertexPath, s.Program.FragmentPath)
	}
	return nil
}

func (r *Renderer) setupProgram() {
	r.scene.Program.Use()
	if r.scene.Setup != nil {
		r.scene.Setup(r.scene.Program)
	}
}

// reloadProgram rebuilds the scene's program after a source change. A
// rebuild that fails keeps the previous program on screen.
func (r *Renderer) reloadProgram(changed string) {
	log.Printf("Shader source %s changed, rebuilding", changed)
	old := r.scene.Program
	prog, err := r.loader.Load(old.VertexPath, old.FragmentPath)
	if err != nil {
		if prog != nil {
			prog.Delete()
		}
		log.Printf("Keeping previous shader program: %v", err)
		return
	}
	old.Delete()
	r.scene.Program = prog
	r.setupProgram()
	log.Printf("Shader program rebuilt as %d", prog.ID())
}

func (r *Renderer) ToggleWireframe() {
	r.wireframe = !r.wireframe
}

func adjustMix(mix, delta float32) float32 {
	mix += delta
	if mix < 0 {
		return 0
	}
	if mix > 1 {
		return 1
	}
	return mix
}

// frameTime is the scene time of the current frame. Recordings advance by
// exactly one frame period so the output does not depend on render speed.
func (r *Renderer) frameTime(startTime float64) float64 {
	if r.recorder != nil {
		return float64(r.frameCount) / float64(r.opts.FPS)
	}
	return r.context.Time() - startTime
}

// RenderFrame clears the back buffer and draws the scene once.
func (r *Renderer) RenderFrame(f Frame) {
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	c := r.opts.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	s := r.scene
	s.Program.Use()
	if s.Update != nil {
		s.Update(s.Program, f)
	}
	for i, t := range s.Textures {
		t.Bind(uint32(i))
	}
	s.Mesh.Draw()
}

// Run draws frames until the window is closed (Escape) or, when recording,
// the requested duration has been captured.
func (r *Renderer) Run() error {
	if r.scene == nil {
		return fmt.Errorf("no scene loaded")
	}

	var totalFrames int
	if r.recorder != nil {
		if err := r.recorder.Start(); err != nil {
			return err
		}
		totalFrames = recordingFrames(r.opts.Duration, r.opts.FPS)
	}

	startTime := r.context.Time()
	var lastTime float64
	for !r.context.ShouldClose() {
		if r.watcher != nil {
			if name, ok := r.watcher.Poll(); ok {
				r.reloadProgram(name)
			}
		}

		now := r.frameTime(startTime)
		r.RenderFrame(Frame{
			Time:  now,
			Delta: now - lastTime,
			Count: r.frameCount,
			Mix:   r.mix,
		})

		if r.recorder != nil {
			if err := r.captureFrame(); err != nil {
				r.recorder.Close()
				return err
			}
			if r.recorder.Frames() >= totalFrames {
				r.context.SetShouldClose(true)
			}
		}

		r.context.EndFrame()
		lastTime = now
		r.frameCount++
	}

	if r.recorder != nil {
		return r.recorder.Close()
	}
	return nil
}

// Shutdown releases the scene and stops background helpers. The window is
// owned and destroyed by the caller.
func (r *Renderer) Shutdown() {
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
	if r.recorder != nil {
		r.recorder.Close()
	}
	r.scene.Destroy()
	r.scene = nil
}
