package shader

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Source holds one stage's shader text. The backing buffer carries a trailing
// NUL so it can be handed to the GL without copying.
type Source struct {
	Path string
	buf  []byte
}

// Sources is a vertex/fragment pair ready to be compiled.
type Sources struct {
	Vertex   Source
	Fragment Source
}

// NewSource copies b into a NUL-terminated buffer. path may be empty for
// sources that did not come from disk.
func NewSource(path string, b []byte) Source {
	buf := make([]byte, len(b)+1)
	copy(buf, b)
	return Source{Path: path, buf: buf}
}

// ReadSource reads the whole file at path in binary mode.
func ReadSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, &BuildError{Failure: FailedToOpenFile, Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("ERROR::SHADER::FAILED_TO_CLOSE_FILE %s: %v", path, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return Source{}, fmt.Errorf("stat shader %s: %w", path, err)
	}
	size := info.Size()
	buf := make([]byte, size+1)
	if _, err := io.ReadFull(f, buf[:size]); err != nil {
		return Source{}, fmt.Errorf("read shader %s: %w", path, err)
	}
	return Source{Path: path, buf: buf}, nil
}

// ReadSources reads both stages. Nothing is handed to the GL until both files
// have been read.
func ReadSources(vertexPath, fragmentPath string) (Sources, error) {
	vertex, err := ReadSource(vertexPath)
	if err != nil {
		return Sources{}, err
	}
	fragment, err := ReadSource(fragmentPath)
	if err != nil {
		return Sources{}, err
	}
	return Sources{Vertex: vertex, Fragment: fragment}, nil
}

// Len is the source length without the terminator.
func (s Source) Len() int {
	if len(s.buf) == 0 {
		return 0
	}
	return len(s.buf) - 1
}

// Bytes returns the source text without the terminator.
func (s Source) Bytes() []byte {
	return s.buf[:s.Len()]
}

func (s Source) String() string {
	return string(s.Bytes())
}

// CString returns the source including its NUL terminator, as expected by gl.Strs.
func (s Source) CString() string {
	if len(s.buf) == 0 {
		return "\x00"
	}
	return string(s.buf)
}
