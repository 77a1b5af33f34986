// Package vbox exposes VirtualBox machine control to scenarios: creating a
// hypervisor handle, starting and stopping the machine, running guest
// processes, and attaching shared folders.
package vbox

import (
	"context"
	"fmt"

	"github.com/caseforge/caseforge/hypervisor"
	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/engine"
	"github.com/caseforge/caseforge/internal/registry"
	"github.com/caseforge/caseforge/internal/state"
)

// Path is the dotted library path scenarios import this package under.
const Path = "caseforge.modules.vbox"

// State keys this package owns.
const (
	// KeyHandle holds the live hypervisor.Hypervisor during execution.
	KeyHandle = "hypervisor.handle"

	// KeyVar holds the hypervisor variable name in generated programs.
	KeyVar = "hypervisor.var"
)

// generatedVar is the variable name create emits and the other modules
// reference.
const generatedVar = "vbox"

const hypervisorImport = "github.com/caseforge/caseforge/hypervisor"

// Package returns this package's module catalog entry.
func Package() *registry.Package {
	return &registry.Package{
		Path: Path,
		Modules: []registry.Module{
			&Create{},
			&StartMachine{},
			&StopMachine{},
			&ExecuteProcess{},
			&CreateSharedFolder{},
		},
	}
}

// liveHandle fetches the hypervisor stored by a prior create action.
func liveHandle(bag *state.Bag) (hypervisor.Hypervisor, error) {
	hv, ok := state.Value[hypervisor.Hypervisor](bag, KeyHandle)
	if !ok {
		return nil, fmt.Errorf("no hypervisor in state under %q, run a VBoxCreate action first", KeyHandle)
	}
	return hv, nil
}

// generatedHandle fetches the hypervisor variable name a prior create
// fragment emitted.
func generatedHandle(bag *state.Bag) (string, error) {
	name, ok := state.Value[string](bag, KeyVar)
	if !ok {
		return "", fmt.Errorf("no hypervisor variable in state under %q, run a VBoxCreate action first", KeyVar)
	}
	return name, nil
}

// Create binds a VirtualBox machine and stores the handle for the actions
// that follow.
type Create struct{}

// CreateArgs name the machine to bind.
type CreateArgs struct {
	MachineName string `cf:"machine_name"`
}

func (m *Create) Name() string           { return "VBoxCreate" }
func (m *Create) Aliases() []string      { return []string{"vbox_create"} }
func (m *Create) NewArgs() any           { return new(CreateArgs) }
func (m *Create) NewConfig() any         { return new(struct{}) }
func (m *Create) Dependencies() []string { return []string{hypervisorImport} }

func (m *Create) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*CreateArgs)
	logger := ctxlog.FromContext(ctx)

	if _, exists := state.Value[hypervisor.Hypervisor](bag, KeyHandle); exists {
		logger.Warn("Replacing existing hypervisor handle.", "machine", a.MachineName)
	}

	logger.Info("Binding VirtualBox machine.", "machine", a.MachineName)
	bag.Set(KeyHandle, hypervisor.NewVBox(a.MachineName))
	bag.Set(KeyVar, generatedVar)
	return nil
}

func (m *Create) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*CreateArgs)

	if _, exists := state.Value[string](bag, KeyVar); exists {
		return "", fmt.Errorf("hypervisor variable %q already emitted, one machine per scenario", generatedVar)
	}
	bag.Set(KeyVar, generatedVar)

	fragment := fmt.Sprintf(`
		%s := hypervisor.NewVBox(%q)
	`, generatedVar, a.MachineName)
	return engine.AutoFormat(fragment, bag), nil
}

// StartMachine boots the bound machine headlessly.
type StartMachine struct{}

// StartMachineArgs control startup.
type StartMachineArgs struct {
	// WaitForGuestAdditions blocks until the guest additions service is up,
	// so guest process execution is possible immediately afterwards.
	WaitForGuestAdditions bool `cf:"wait_for_guest_additions,optional"`
}

func (m *StartMachine) Name() string           { return "VBoxStartMachine" }
func (m *StartMachine) Aliases() []string      { return []string{"vbox_start"} }
func (m *StartMachine) NewConfig() any         { return new(struct{}) }
func (m *StartMachine) Dependencies() []string { return []string{hypervisorImport} }

func (m *StartMachine) NewArgs() any {
	return &StartMachineArgs{WaitForGuestAdditions: true}
}

func (m *StartMachine) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*StartMachineArgs)
	hv, err := liveHandle(bag)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Starting machine.",
		"machine", hv.MachineName(),
		"wait_for_guest_additions", a.WaitForGuestAdditions)
	return hv.StartMachine(a.WaitForGuestAdditions)
}

func (m *StartMachine) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*StartMachineArgs)
	name, err := generatedHandle(bag)
	if err != nil {
		return "", err
	}

	fragment := fmt.Sprintf(`
		if err := %s.StartMachine(%t); err != nil {
			slog.Error("failed to start machine", "error", err)
			os.Exit(1)
		}
	`, name, a.WaitForGuestAdditions)
	return engine.AutoFormat(fragment, bag), nil
}

// StopMachine shuts the bound machine down.
type StopMachine struct{}

// StopMachineArgs control shutdown.
type StopMachineArgs struct {
	// Force cuts power instead of pressing the ACPI power button.
	Force bool `cf:"force,optional"`
}

func (m *StopMachine) Name() string           { return "VBoxStopMachine" }
func (m *StopMachine) Aliases() []string      { return []string{"vbox_stop"} }
func (m *StopMachine) NewArgs() any           { return new(StopMachineArgs) }
func (m *StopMachine) NewConfig() any         { return new(struct{}) }
func (m *StopMachine) Dependencies() []string { return []string{hypervisorImport} }

func (m *StopMachine) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*StopMachineArgs)
	hv, err := liveHandle(bag)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Stopping machine.",
		"machine", hv.MachineName(), "force", a.Force)
	return hv.StopMachine(a.Force)
}

func (m *StopMachine) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*StopMachineArgs)
	name, err := generatedHandle(bag)
	if err != nil {
		return "", err
	}

	fragment := fmt.Sprintf(`
		if err := %s.StopMachine(%t); err != nil {
			slog.Error("failed to stop machine", "error", err)
			os.Exit(1)
		}
	`, name, a.Force)
	return engine.AutoFormat(fragment, bag), nil
}

// ExecuteProcess runs a command inside the guest and logs its output.
type ExecuteProcess struct{}

// ExecuteProcessArgs carry the argv to run. The first element is the
// absolute executable path inside the guest.
type ExecuteProcessArgs struct {
	Command []string `cf:"command"`
}

func (m *ExecuteProcess) Name() string           { return "VBoxExecuteProcess" }
func (m *ExecuteProcess) Aliases() []string      { return []string{"vbox_exec"} }
func (m *ExecuteProcess) NewArgs() any           { return new(ExecuteProcessArgs) }
func (m *ExecuteProcess) NewConfig() any         { return new(struct{}) }
func (m *ExecuteProcess) Dependencies() []string { return []string{hypervisorImport} }

func (m *ExecuteProcess) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*ExecuteProcessArgs)
	if len(a.Command) == 0 {
		return fmt.Errorf("command must not be empty")
	}
	hv, err := liveHandle(bag)
	if err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Executing guest process.", "command", a.Command)
	output, err := hv.ExecuteProcess(a.Command)
	if err != nil {
		return err
	}
	logger.Info("Guest process finished.", "output", output)
	return nil
}

func (m *ExecuteProcess) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*ExecuteProcessArgs)
	if len(a.Command) == 0 {
		return "", fmt.Errorf("command must not be empty")
	}
	name, err := generatedHandle(bag)
	if err != nil {
		return "", err
	}

	fragment := fmt.Sprintf(`
		output, err := %s.ExecuteProcess(%#v)
		if err != nil {
			slog.Error("failed to execute guest process", "error", err)
			os.Exit(1)
		}
		slog.Info("guest process finished", "output", output)
	`, name, a.Command)
	return engine.AutoFormat(fragment, bag), nil
}

// CreateSharedFolder attaches a transient host directory to the guest.
type CreateSharedFolder struct{}

// CreateSharedFolderArgs describe the share.
type CreateSharedFolderArgs struct {
	Name     string `cf:"name"`
	HostPath string `cf:"host_path"`
	Writable bool   `cf:"writable,optional"`
}

func (m *CreateSharedFolder) Name() string           { return "VBoxCreateSharedFolder" }
func (m *CreateSharedFolder) Aliases() []string      { return []string{"vbox_share"} }
func (m *CreateSharedFolder) NewArgs() any           { return new(CreateSharedFolderArgs) }
func (m *CreateSharedFolder) NewConfig() any         { return new(struct{}) }
func (m *CreateSharedFolder) Dependencies() []string { return []string{hypervisorImport} }

func (m *CreateSharedFolder) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*CreateSharedFolderArgs)
	hv, err := liveHandle(bag)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Creating shared folder.",
		"name", a.Name, "host_path", a.HostPath, "writable", a.Writable)
	return hv.CreateSharedFolder(a.Name, a.HostPath, a.Writable)
}

func (m *CreateSharedFolder) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*CreateSharedFolderArgs)
	name, err := generatedHandle(bag)
	if err != nil {
		return "", err
	}

	fragment := fmt.Sprintf(`
		if err := %s.CreateSharedFolder(%q, %q, %t); err != nil {
			slog.Error("failed to create shared folder", "error", err)
			os.Exit(1)
		}
	`, name, a.Name, a.HostPath, a.Writable)
	return engine.AutoFormat(fragment, bag), nil
}
