package main

import (
	"math"
	"runtime"

	"github.com/richinsley/learnopengl/app"
	"github.com/richinsley/learnopengl/mesh"
	options "github.com/richinsley/learnopengl/options"
	"github.com/richinsley/learnopengl/renderer"
	"github.com/richinsley/learnopengl/shader"
)

func init() {
	runtime.LockOSThread()
}

// pulse oscillates between 0.5 and 1 once every 2π seconds.
func pulse(t float64) float32 {
	return float32(0.75 + 0.25*math.Sin(t))
}

func main() {
	defaults := options.Default()
	defaults.Title = "LearnOpenGL - Shaders"

	// Sources are read before the window opens; a missing file is fatal.
	var sources shader.Sources

	app.Main(app.Program{
		Name:     "shaders",
		Defaults: defaults,
		Prepare: func(opts *options.Options) error {
			var err error
			sources, err = shader.ReadSources(opts.VertexShader, opts.FragmentShader)
			return err
		},
		Build: func(r *renderer.Renderer, opts *options.Options) (*renderer.Scene, error) {
			prog, err := r.BuildProgram(sources)
			if err != nil {
				return nil, err
			}
			m, err := mesh.New(mesh.ColoredTriangle, nil, mesh.ColorLayout)
			if err != nil {
				prog.Delete()
				return nil, err
			}
			return &renderer.Scene{
				Title:   "shaders",
				Program: prog,
				Mesh:    m,
				Update: func(p *shader.Program, f renderer.Frame) {
					p.SetFloat("pulse", pulse(f.Time))
				},
			}, nil
		},
	})
}
