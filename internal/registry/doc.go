// Package registry provides the central "glue" for the module system.
//
// The Registry maps every string reference a scenario may use (qualified
// names, bare aliases, alias-qualified names) to exactly one concrete
// module implementation. Modules arrive in Packages, the static catalog the
// host program registers at startup; the cache is then built from the
// libraries a scenario declares, with an on-demand catalog lookup as the
// fallback for references the cache has never seen.
package registry
