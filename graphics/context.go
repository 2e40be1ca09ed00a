package graphics

// Key identifies the keys the render loop reacts to.
type Key int

const (
	KeyEscape Key = iota
	KeyF1
	KeyUp
	KeyDown
	KeySpace
)

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// RegisterKeyCallback runs f when key is pressed.
	RegisterKeyCallback(key Key, f func())
	// RegisterResizeCallback runs f with the new framebuffer size.
	RegisterResizeCallback(f func(width, height int))
}
