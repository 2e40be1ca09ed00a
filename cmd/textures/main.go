package main

import (
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/learnopengl/app"
	"github.com/richinsley/learnopengl/mesh"
	options "github.com/richinsley/learnopengl/options"
	"github.com/richinsley/learnopengl/renderer"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/texture"
)

func init() {
	runtime.LockOSThread()
}

// transform places the quad in the lower right corner and spins it about Z.
func transform(t float64, rotate bool) mgl32.Mat4 {
	if !rotate {
		return mgl32.Ident4()
	}
	return mgl32.Translate3D(0.5, -0.5, 0).Mul4(mgl32.HomogRotate3DZ(float32(t)))
}

func main() {
	defaults := options.Default()
	defaults.Title = "LearnOpenGL - Textures"
	defaults.VertexShader = "assets/shaders/texture_vertex.glsl"
	defaults.FragmentShader = "assets/shaders/texture_fragment.glsl"

	var sources shader.Sources

	app.Main(app.Program{
		Name:     "textures",
		Defaults: defaults,
		Prepare: func(opts *options.Options) error {
			var err error
			sources, err = shader.ReadSources(opts.VertexShader, opts.FragmentShader)
			return err
		},
		Build: func(r *renderer.Renderer, opts *options.Options) (*renderer.Scene, error) {
			scene := &renderer.Scene{Title: "textures"}
			for _, path := range []string{opts.Texture0, opts.Texture1} {
				tex, err := texture.Load(path, texture.DefaultParams)
				if err != nil {
					scene.Destroy()
					return nil, err
				}
				scene.Textures = append(scene.Textures, tex)
			}

			m, err := mesh.New(mesh.TexturedQuad, mesh.TexturedQuadIndices, mesh.TexturedLayout)
			if err != nil {
				scene.Destroy()
				return nil, err
			}
			scene.Mesh = m

			prog, err := r.BuildProgram(sources)
			if err != nil {
				scene.Destroy()
				return nil, err
			}
			scene.Program = prog

			scene.Setup = func(p *shader.Program) {
				p.SetInt("texture1", 0)
				p.SetInt("texture2", 1)
			}
			scene.Update = func(p *shader.Program, f renderer.Frame) {
				p.SetFloat("mixValue", f.Mix)
				p.SetMat4("transform", transform(f.Time, opts.Rotate))
			}
			return scene, nil
		},
	})
}
