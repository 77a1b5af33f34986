package registry

import (
	"context"

	"github.com/caseforge/caseforge/internal/ctxlog"
)

// Registry resolves module references for one application instance. The
// packages catalog is fixed at construction; the cache grows as libraries
// are loaded and never shrinks.
type Registry struct {
	packages map[string]*Package
	cache    map[string]Module
}

// New creates a Registry over the given package catalog. A later package
// claiming an already-registered path is ignored with a warning, matching
// the first-registration-wins rule used everywhere else.
func New(ctx context.Context, packages ...*Package) *Registry {
	logger := ctxlog.FromContext(ctx)
	r := &Registry{
		packages: make(map[string]*Package, len(packages)),
		cache:    make(map[string]Module),
	}
	for _, pkg := range packages {
		if _, exists := r.packages[pkg.Path]; exists {
			logger.Warn("Duplicate package path ignored.", "path", pkg.Path)
			continue
		}
		r.packages[pkg.Path] = pkg
	}
	return r
}

// BuildCache registers every module of each declared library under its
// qualified name and all of its aliases. Each alias is bound twice: bare
// ("sample") and substituted into the qualified path
// ("caseforge.modules.sample.sample"), preserving both short-form and
// namespaced references.
//
// Name conflicts are soft: the first registration wins, the loser is logged
// and dropped.
func (r *Registry) BuildCache(ctx context.Context, libraries []string) error {
	logger := ctxlog.FromContext(ctx)
	for _, lib := range libraries {
		pkg, ok := r.packages[lib]
		if !ok {
			return &ResolutionError{Reference: lib, Reason: "library is not registered in the module catalog"}
		}
		for _, mod := range pkg.Modules {
			r.register(ctx, lib+"."+mod.Name(), mod)
			for _, alias := range mod.Aliases() {
				r.register(ctx, alias, mod)
				r.register(ctx, lib+"."+alias, mod)
			}
		}
		logger.Debug("Library loaded into module cache.", "library", lib, "modules", len(pkg.Modules))
	}
	return nil
}

// register binds name to mod unless the name is already taken.
func (r *Registry) register(ctx context.Context, name string, mod Module) {
	if existing, ok := r.cache[name]; ok {
		if existing != mod {
			ctxlog.FromContext(ctx).Warn("Module name already registered, keeping first binding.",
				"name", name, "kept", existing.Name(), "dropped", mod.Name())
		}
		return
	}
	r.cache[name] = mod
}

// CachedNames reports how many references the cache currently binds.
func (r *Registry) CachedNames() int {
	return len(r.cache)
}
