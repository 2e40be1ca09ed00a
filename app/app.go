package app

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/richinsley/learnopengl/glfwcontext"
	"github.com/richinsley/learnopengl/graphics"
	"github.com/richinsley/learnopengl/headless"
	options "github.com/richinsley/learnopengl/options"
	"github.com/richinsley/learnopengl/renderer"
)

// Program describes one of the tutorial executables.
type Program struct {
	Name     string
	Defaults options.Options
	// Prepare runs before any window exists, so its failures exit without
	// touching GLFW or the GPU. Optional.
	Prepare func(opts *options.Options) error
	// Build creates the scene once the OpenGL context is current.
	Build func(r *renderer.Renderer, opts *options.Options) (*renderer.Scene, error)
}

// Main parses the command line, opens the window and runs the render loop.
// Setup failures are fatal: they are logged and the process exits with
// status 1.
func Main(p Program) {
	opts, err := options.Parse(p.Name, p.Defaults, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if opts.WriteConfig != "" {
		if err := opts.WriteFile(opts.WriteConfig); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Wrote configuration to %s", opts.WriteConfig)
		return
	}

	if p.Prepare != nil {
		if err := p.Prepare(opts); err != nil {
			log.Fatalf("%v", err)
		}
	}

	var ctx graphics.Context
	if opts.Headless {
		h, err := headless.New(opts)
		if err != nil {
			log.Fatalf("Failed to create headless context: %v", err)
		}
		defer h.Shutdown()
		ctx = h
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("%v", err)
		}
		defer glfwcontext.TerminateGraphics()

		w, err := glfwcontext.New(opts)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer w.Shutdown()
		ctx = w
	}

	r, err := renderer.NewRenderer(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	scene, err := p.Build(r, opts)
	if err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}
	if err := r.SetScene(scene); err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}

	log.Println("Starting render loop...")
	if err := r.Run(); err != nil {
		log.Fatalf("Render loop failed: %v", err)
	}
	log.Println("Render loop finished")
}
