package main

import (
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/learnopengl/app"
	"github.com/richinsley/learnopengl/mesh"
	options "github.com/richinsley/learnopengl/options"
	"github.com/richinsley/learnopengl/renderer"
	"github.com/richinsley/learnopengl/shader"
)

func init() {
	runtime.LockOSThread()
}

func buildScene(r *renderer.Renderer, opts *options.Options) (*renderer.Scene, error) {
	prog, err := r.BuildProgram(shader.Sources{
		Vertex:   shader.NewSource("", []byte(shader.HelloTriangleVertex)),
		Fragment: shader.NewSource("", []byte(shader.HelloTriangleFragment)),
	})
	if err != nil {
		return nil, err
	}
	m, err := mesh.New(mesh.Triangle, nil, mesh.PositionLayout)
	if err != nil {
		prog.Delete()
		return nil, err
	}
	return &renderer.Scene{
		Title:   "hello triangle",
		Program: prog,
		Mesh:    m,
		Setup: func(p *shader.Program) {
			p.SetVec3("triangleColor", mgl32.Vec3{1.0, 0.5, 0.2})
		},
	}, nil
}

func main() {
	defaults := options.Default()
	defaults.Title = "LearnOpenGL - Hello Triangle"

	app.Main(app.Program{
		Name:     "hellotriangle",
		Defaults: defaults,
		Build:    buildScene,
	})
}
