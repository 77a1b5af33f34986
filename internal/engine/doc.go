// Package engine runs scenarios in its two modes: direct execution and
// translation into a standalone Go program. Both modes resolve every action's
// module up front, validate the heterogeneous args/config mappings against
// the module's schema structs, and thread one shared state bag through the
// whole pass. Execution state and generation state are never shared.
package engine
