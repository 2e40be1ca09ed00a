package options

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Color is an RGBA clear colour. On the command line and in config files it is
// written as "r,g,b,a" with components in [0,1].
type Color [4]float32

func (c *Color) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

func (c *Color) Set(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) != 3 && len(fields) != 4 {
		return fmt.Errorf("color %q: want 3 or 4 comma separated components", s)
	}
	parsed := Color{0, 0, 0, 1}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return fmt.Errorf("color %q: %w", s, err)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("color %q: component %d out of range [0,1]", s, i)
		}
		parsed[i] = float32(v)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error { return c.Set(string(text)) }

// Options configures window creation, shader/texture inputs and the render loop.
type Options struct {
	// Window
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	GLMajor   int    `toml:"gl_major"`
	GLMinor   int    `toml:"gl_minor"`
	Resizable bool   `toml:"resizable"`
	Visible   bool   `toml:"visible"`
	Headless  bool   `toml:"headless"` // render into an EGL pbuffer, no window system

	// Scene
	ClearColor     Color   `toml:"clear_color"`
	VertexShader   string  `toml:"vertex_shader"`
	FragmentShader string  `toml:"fragment_shader"`
	Texture0       string  `toml:"texture0"`
	Texture1       string  `toml:"texture1"`
	Mix            float64 `toml:"mix"`
	Rotate         bool    `toml:"rotate"`
	Wireframe      bool    `toml:"wireframe"`

	// Shader handling
	Strict    bool `toml:"strict"`     // abort when a shader fails to compile or link
	HotReload bool `toml:"hot_reload"` // rebuild the program when shader files change

	// Recording
	OutputFile string  `toml:"output"`
	Duration   float64 `toml:"duration"`
	FPS        int     `toml:"fps"`
	FFMPEGPath string  `toml:"ffmpeg"`

	ConfigFile  string `toml:"-"`
	WriteConfig string `toml:"-"`
	Help        bool   `toml:"-"`
}

// Default returns the LearnOpenGL tutorial settings: an 800x600 window
// with a teal clear colour on an OpenGL 4.1 core context.
func Default() Options {
	return Options{
		Width:          800,
		Height:         600,
		Title:          "LearnOpenGL",
		GLMajor:        4,
		GLMinor:        1,
		Resizable:      true,
		Visible:        true,
		ClearColor:     Color{0.1, 0.4, 0.4, 1.0},
		VertexShader:   "assets/shaders/color_vertex.glsl",
		FragmentShader: "assets/shaders/color_fragment.glsl",
		Texture0:       "assets/textures/container.png",
		Texture1:       "assets/textures/awesomeface.png",
		Mix:            0.2,
		Duration:       10.0,
		FPS:            60,
	}
}

// Recording reports whether frames should be piped to ffmpeg.
func (o *Options) Recording() bool {
	return o.OutputFile != ""
}

func (o *Options) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "TOML config file; flags override its values")
	fs.StringVar(&o.WriteConfig, "write-config", o.WriteConfig, "Write the effective configuration to this TOML file and exit")
	fs.BoolVar(&o.Help, "help", o.Help, "Show help message")

	fs.IntVar(&o.Width, "width", o.Width, "Window width")
	fs.IntVar(&o.Height, "height", o.Height, "Window height")
	fs.StringVar(&o.Title, "title", o.Title, "Window title")
	fs.IntVar(&o.GLMajor, "gl-major", o.GLMajor, "OpenGL context major version")
	fs.IntVar(&o.GLMinor, "gl-minor", o.GLMinor, "OpenGL context minor version")
	fs.BoolVar(&o.Resizable, "resizable", o.Resizable, "Allow the window to be resized")
	fs.BoolVar(&o.Visible, "visible", o.Visible, "Show the window (set false to render hidden while recording)")
	fs.BoolVar(&o.Headless, "headless", o.Headless, "Render without a window through EGL (Linux, requires -output)")

	fs.Var(&o.ClearColor, "clear", "Clear colour as r,g,b[,a]")
	fs.StringVar(&o.VertexShader, "vertex", o.VertexShader, "Vertex shader source file")
	fs.StringVar(&o.FragmentShader, "fragment", o.FragmentShader, "Fragment shader source file")
	fs.StringVar(&o.Texture0, "texture0", o.Texture0, "Image bound to texture unit 0")
	fs.StringVar(&o.Texture1, "texture1", o.Texture1, "Image bound to texture unit 1")
	fs.Float64Var(&o.Mix, "mix", o.Mix, "Initial blend factor between the two textures")
	fs.BoolVar(&o.Rotate, "rotate", o.Rotate, "Rotate the quad over time")
	fs.BoolVar(&o.Wireframe, "wireframe", o.Wireframe, "Start in wireframe mode (toggle with F1)")

	fs.BoolVar(&o.Strict, "strict", o.Strict, "Exit when a shader fails to compile or link")
	fs.BoolVar(&o.HotReload, "hot-reload", o.HotReload, "Rebuild the shader program when its source files change")

	fs.StringVar(&o.OutputFile, "output", o.OutputFile, "Record frames to this video file")
	fs.Float64Var(&o.Duration, "duration", o.Duration, "Duration to record in seconds")
	fs.IntVar(&o.FPS, "fps", o.FPS, "Frames per second for recording")
	fs.StringVar(&o.FFMPEGPath, "ffmpeg", o.FFMPEGPath, "Path to ffmpeg executable")
}

// Parse builds options from defaults, an optional TOML file named by -config
// and the command line, in that order of precedence (last wins).
func Parse(name string, defaults Options, args []string) (*Options, error) {
	// First pass only discovers -config.
	probe := defaults
	pfs := flag.NewFlagSet(name, flag.ContinueOnError)
	pfs.SetOutput(io.Discard)
	probe.bind(pfs)
	if err := pfs.Parse(args); err != nil && err != flag.ErrHelp {
		return nil, err
	}

	opts := defaults
	if probe.ConfigFile != "" {
		if err := opts.LoadFile(probe.ConfigFile); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.Help {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", name)
		fs.PrintDefaults()
		return &opts, flag.ErrHelp
	}
	return &opts, opts.Validate()
}

// LoadFile overlays the values present in a TOML file onto o.
func (o *Options) LoadFile(path string) error {
	if _, err := toml.DecodeFile(path, o); err != nil {
		return fmt.Errorf("couldn't read config file %s: %w", path, err)
	}
	return nil
}

// WriteFile stores o as TOML.
func (o *Options) WriteFile(path string) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(o); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("couldn't write config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the window or render loop cannot honour.
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Width, o.Height)
	}
	if o.GLMajor < 3 || (o.GLMajor == 3 && o.GLMinor < 3) {
		return fmt.Errorf("OpenGL %d.%d is too old, need at least 3.3 core", o.GLMajor, o.GLMinor)
	}
	if o.Mix < 0 || o.Mix > 1 {
		return fmt.Errorf("mix %.2f out of range [0,1]", o.Mix)
	}
	if o.Headless && !o.Recording() {
		return fmt.Errorf("headless rendering needs an output file")
	}
	if o.Recording() {
		if o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", o.FPS)
		}
		if o.Duration <= 0 {
			return fmt.Errorf("invalid recording duration %.2f", o.Duration)
		}
	}
	return nil
}
