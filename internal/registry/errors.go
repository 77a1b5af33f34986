package registry

import "fmt"

// ResolutionError reports a module reference that could not be mapped to an
// implementation: an unknown alias, an unregistered library, or a package
// that has no module with the referenced identifier.
type ResolutionError struct {
	Reference string
	Reason    string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve module reference %q: %s", e.Reference, e.Reason)
}
