// Package rendering builds forensic bundles and turns them into human
// readable documents through a set of renderer plugins.
package rendering

import (
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Object is one typed record in a bundle: a URL visit, a prefetch entry, a
// created file, and so on. Properties are renderer-defined.
type Object struct {
	ID         string         `yaml:"id"`
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties"`
}

// Bundle is an in-progress collection of forensic objects. It keeps an index
// from object type to objects so renderers can locate their input without
// scanning the whole bundle at render time.
type Bundle struct {
	ID      string    `yaml:"id"`
	Name    string    `yaml:"name"`
	Objects []*Object `yaml:"objects"`

	index map[string][]*Object
}

// NewBundle returns an empty named bundle with a fresh identity.
func NewBundle(name string) *Bundle {
	return &Bundle{
		ID:    uuid.NewString(),
		Name:  name,
		index: make(map[string][]*Object),
	}
}

// AddObject records an object and updates the type index. An object without
// an ID is assigned one.
func (b *Bundle) AddObject(obj *Object) {
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	b.Objects = append(b.Objects, obj)
	if b.index == nil {
		b.index = make(map[string][]*Object)
	}
	b.index[obj.Type] = append(b.index[obj.Type], obj)
}

// ObjectsOfType returns the bundle's objects of one type, in insertion
// order.
func (b *Bundle) ObjectsOfType(objType string) []*Object {
	return b.index[objType]
}

// Types returns the distinct object types present, sorted.
func (b *Bundle) Types() []string {
	types := make([]string, 0, len(b.index))
	for t := range b.index {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// WriteYAML serializes the bundle to path.
func (b *Bundle) WriteYAML(path string) error {
	raw, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("serializing bundle %s: %w", b.ID, err)
	}
	return os.WriteFile(path, raw, 0o644)
}
