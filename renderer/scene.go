package renderer

import (
	"log"

	"github.com/richinsley/learnopengl/mesh"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/texture"
)

// Frame carries the per-frame values a scene may feed to its uniforms.
type Frame struct {
	Time  float64 // seconds since the loop started
	Delta float64 // seconds since the previous frame
	Count int
	Mix   float32 // blend factor adjusted with the arrow keys
}

// Scene is everything drawn by the render loop: one program, one mesh and
// the textures bound to units 0..n-1.
type Scene struct {
	Title    string
	Program  *shader.Program
	Mesh     *mesh.Mesh
	Textures []*texture.Texture

	// Setup runs with the program active whenever it is (re)built, e.g. to
	// assign sampler units.
	Setup func(p *shader.Program)
	// Update runs with the program active before every draw.
	Update func(p *shader.Program, f Frame)
}

// Destroy releases all OpenGL resources used by the scene.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	log.Printf("Destroying scene: %s", s.Title)

	for _, t := range s.Textures {
		t.Delete()
	}
	if s.Mesh != nil {
		s.Mesh.Delete()
	}
	if s.Program != nil {
		s.Program.Delete()
	}
}
