package engine

import "fmt"

// ValidationError reports an action whose args or config mapping does not
// match the resolved module's schema. It aborts the whole scenario; no
// subsequent action runs.
type ValidationError struct {
	Action string
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("action %q: invalid field %q: %s", e.Action, e.Field, e.Detail)
}

// fieldError is the decoder-internal error carrying the offending field
// before the engine attaches the action name.
type fieldError struct {
	field  string
	detail string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.field, e.detail)
}
