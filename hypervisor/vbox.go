package hypervisor

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes a hypervisor control command and returns its combined
// output. The indirection exists so tests can observe invocations without a
// VirtualBox installation.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// execRunner is the production Runner shelling out to the host.
type execRunner struct{}

func (execRunner) Run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// VBox drives a VirtualBox machine through the VBoxManage command line.
type VBox struct {
	machine string
	runner  Runner
}

// NewVBox returns a VBox controlling the named machine.
func NewVBox(machine string) *VBox {
	return &VBox{machine: machine, runner: execRunner{}}
}

// NewVBoxWithRunner returns a VBox using a custom command runner.
func NewVBoxWithRunner(machine string, runner Runner) *VBox {
	return &VBox{machine: machine, runner: runner}
}

func (v *VBox) MachineName() string {
	return v.machine
}

func (v *VBox) StartMachine(waitForGuestAdditions bool) error {
	slog.Info("Starting machine.", "machine", v.machine)
	if _, err := v.runner.Run("VBoxManage", "startvm", v.machine, "--type", "headless"); err != nil {
		return err
	}
	if waitForGuestAdditions {
		// guestproperty wait blocks until the guest additions service
		// publishes its run level.
		_, err := v.runner.Run("VBoxManage", "guestproperty", "wait", v.machine, "/VirtualBox/GuestAdd/Vbgl/Video/SavedMode")
		return err
	}
	return nil
}

func (v *VBox) StopMachine(force bool) error {
	slog.Info("Stopping machine.", "machine", v.machine, "force", force)
	mode := "acpipowerbutton"
	if force {
		mode = "poweroff"
	}
	_, err := v.runner.Run("VBoxManage", "controlvm", v.machine, mode)
	return err
}

func (v *VBox) CreateSharedFolder(name, hostPath string, writable bool) error {
	args := []string{"sharedfolder", "add", v.machine, "--name", name, "--hostpath", hostPath, "--transient"}
	if !writable {
		args = append(args, "--readonly")
	}
	_, err := v.runner.Run("VBoxManage", args...)
	return err
}

func (v *VBox) RemoveSharedFolder(name string) error {
	_, err := v.runner.Run("VBoxManage", "sharedfolder", "remove", v.machine, "--name", name, "--transient")
	return err
}

func (v *VBox) ExecuteProcess(command []string) (string, error) {
	if len(command) == 0 {
		return "", fmt.Errorf("empty guest command")
	}
	args := append([]string{"guestcontrol", v.machine, "run", "--exe", command[0], "--"}, command...)
	return v.runner.Run("VBoxManage", args...)
}
