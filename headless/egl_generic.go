//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/learnopengl/graphics"
	options "github.com/richinsley/learnopengl/options"
)

// Headless is only available on Linux.
type Headless struct {
	graphics.Context
}

func New(opts *options.Options) (*Headless, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
