package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/learnopengl/graphics"
	options "github.com/richinsley/learnopengl/options"
)

// Context owns a GLFW window and its OpenGL context.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks    map[glfw.Key]func()
	resizeCallbacks []func(width, height int)
}

var keyMap = map[graphics.Key]glfw.Key{
	graphics.KeyEscape: glfw.KeyEscape,
	graphics.KeyF1:     glfw.KeyF1,
	graphics.KeyUp:     glfw.KeyUp,
	graphics.KeyDown:   glfw.KeyDown,
	graphics.KeySpace:  glfw.KeySpace,
}

func glfwKey(k graphics.Key) (glfw.Key, bool) {
	key, ok := keyMap[k]
	return key, ok
}

// New creates a window sized and titled from options with a core-profile
// context of the configured version, and makes that context current.
func New(opts *options.Options) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}
	if !opts.Visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	log.Printf("Created %dx%d window %q (OpenGL %d.%d core)", opts.Width, opts.Height, opts.Title, opts.GLMajor, opts.GLMinor)
	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed. Escape always closes the window.
func (c *Context) RegisterKeyCallback(key graphics.Key, f func()) {
	k, ok := glfwKey(key)
	if !ok {
		log.Printf("Ignoring callback for unmapped key %d", key)
		return
	}
	c.keyCallbacks[k] = f
}

func (c *Context) RegisterResizeCallback(f func(width, height int)) {
	c.resizeCallbacks = append(c.resizeCallbacks, f)
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
	}
	if callback, ok := c.keyCallbacks[key]; ok {
		callback()
	}
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	for _, f := range c.resizeCallbacks {
		f(width, height)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
