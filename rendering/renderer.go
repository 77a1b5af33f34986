package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Renderer turns the objects it understands into one document.
type Renderer interface {
	// Name is the identifier scenarios use to select this renderer.
	Name() string

	// Render produces the document body, or ok=false when the bundle has
	// nothing this renderer understands.
	Render(b *Bundle) (body []byte, ok bool, err error)
}

// builtinRenderers is the fixed renderer set compiled into this binary.
// Keyed by Renderer.Name.
var builtinRenderers = map[string]Renderer{}

func registerRenderer(r Renderer) {
	if _, exists := builtinRenderers[r.Name()]; exists {
		panic(fmt.Sprintf("renderer %q already registered", r.Name()))
	}
	builtinRenderers[r.Name()] = r
}

// RendererNames lists the available renderers, sorted.
func RendererNames() []string {
	names := make([]string, 0, len(builtinRenderers))
	for name := range builtinRenderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render runs the named renderers over the bundle and writes one Markdown
// document per producing renderer into outputDir. It returns the written
// paths in renderer order.
func Render(b *Bundle, renderers []string, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range renderers {
		r, ok := builtinRenderers[name]
		if !ok {
			return written, fmt.Errorf("unknown renderer %q (available: %v)", name, RendererNames())
		}

		body, ok, err := r.Render(b)
		if err != nil {
			return written, fmt.Errorf("renderer %q: %w", name, err)
		}
		if !ok {
			continue
		}

		path := filepath.Join(outputDir, name+".md")
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
