package app

import (
	"github.com/caseforge/caseforge/internal/registry"
	"github.com/caseforge/caseforge/modules/agent"
	"github.com/caseforge/caseforge/modules/casebundle"
	"github.com/caseforge/caseforge/modules/diskslack"
	"github.com/caseforge/caseforge/modules/sample"
	"github.com/caseforge/caseforge/modules/vbox"
)

// corePackages is the definitive catalog of module packages compiled into
// the caseforge binary.
var corePackages = []*registry.Package{
	sample.Package(),
	vbox.Package(),
	casebundle.Package(),
	diskslack.Package(),
	agent.Package(),
}
