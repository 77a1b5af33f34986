package registry

import (
	"context"
	"strings"

	"github.com/caseforge/caseforge/internal/ctxlog"
)

// Resolve maps a module reference to its implementation. The cache is
// consulted first; a miss falls back to an explicit catalog lookup that
// splits the reference into a package path and a final identifier. The
// fallback only matches canonical module names; aliases exist solely in
// the cache, so scenarios using aliases must declare the owning library.
func (r *Registry) Resolve(ctx context.Context, reference string) (Module, error) {
	if mod, ok := r.cache[reference]; ok {
		return mod, nil
	}

	idx := strings.LastIndex(reference, ".")
	if idx <= 0 || idx == len(reference)-1 {
		return nil, &ResolutionError{Reference: reference, Reason: "not a registered alias and not a qualified name"}
	}
	pkgPath, ident := reference[:idx], reference[idx+1:]

	pkg, ok := r.packages[pkgPath]
	if !ok {
		return nil, &ResolutionError{Reference: reference, Reason: "package " + pkgPath + " is not registered in the module catalog"}
	}

	for _, mod := range pkg.Modules {
		if mod.Name() == ident {
			ctxlog.FromContext(ctx).Debug("Resolved module through catalog fallback.", "reference", reference)
			r.cache[reference] = mod
			return mod, nil
		}
	}
	return nil, &ResolutionError{Reference: reference, Reason: "package " + pkgPath + " has no module named " + ident}
}
