// Package hypervisor controls virtual machines for scenario execution. The
// engine never imports this package directly; it reaches it through the vbox
// module family, and generated programs import it on their own.
package hypervisor

// Hypervisor is the control surface every backend implements: machine
// lifecycle, shared folders, and guest process execution. Long-running
// operations block; callers wanting timeouts implement them above this
// interface.
type Hypervisor interface {
	// MachineName returns the name of the controlled machine.
	MachineName() string

	// StartMachine boots the machine. When waitForGuestAdditions is set it
	// blocks until the guest tooling reports ready.
	StartMachine(waitForGuestAdditions bool) error

	// StopMachine shuts the machine down, hard when force is set.
	StopMachine(force bool) error

	// CreateSharedFolder exposes hostPath inside the guest under name.
	CreateSharedFolder(name, hostPath string, writable bool) error

	// RemoveSharedFolder detaches a previously created shared folder.
	RemoveSharedFolder(name string) error

	// ExecuteProcess runs a program in the guest and returns its combined
	// output.
	ExecuteProcess(command []string) (string, error)
}
