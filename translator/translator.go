package translator

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/learnopengl/shader"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first use.
// Creation compiles the translator module and is slow, so it is deferred
// until a shader actually needs it.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// NeedsTranslation reports whether src declares GLSL ES 3.00, which desktop
// core contexts do not accept.
func NeedsTranslation(src string) bool {
	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		return len(fields) >= 3 && fields[0] == "#version" && fields[1] == "300" && fields[2] == "es"
	}
	return false
}

// ToDesktop translates GLSL ES 3.00 source for the given stage ("vertex" or
// "fragment") to GLSL 4.10. The returned map gives the translated name of
// every variable the translator renamed.
func ToDesktop(src, stage string) (string, map[string]string, error) {
	t, err := GetTranslator()
	if err != nil {
		return "", nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	out, err := t.TranslateShader(src, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		if v.MappedName != "" && v.MappedName != name {
			names[name] = v.MappedName
		}
	}
	return out.Code, names, nil
}

// Preprocess is a shader.Preprocessor that translates GLSL ES sources and
// passes everything else through untouched.
func Preprocess(stage shader.Stage, src shader.Source) (shader.Source, map[string]string, error) {
	if !NeedsTranslation(src.String()) {
		return src, nil, nil
	}
	code, names, err := ToDesktop(src.String(), stage.String())
	if err != nil {
		return src, nil, err
	}
	return shader.NewSource(src.Path, []byte(code)), names, nil
}
