// Package scenario loads scenario documents into the model. Two document
// formats are supported and produce identical models: HCL (the native
// format) and YAML. Malformed documents surface as *DocumentError before
// any module is resolved.
package scenario
