package hypervisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunner captures VBoxManage invocations instead of running them.
type recordingRunner struct {
	calls []string
}

func (r *recordingRunner) Run(name string, args ...string) (string, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return "", nil
}

func TestVBoxCommandShapes(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	v := NewVBoxWithRunner("forensic-vm", runner)
	assert.Equal(t, "forensic-vm", v.MachineName())

	require.NoError(t, v.StartMachine(false))
	require.NoError(t, v.StopMachine(true))
	require.NoError(t, v.CreateSharedFolder("evidence", "/tmp/evidence", false))
	require.NoError(t, v.RemoveSharedFolder("evidence"))

	out, err := v.ExecuteProcess([]string{"cmd.exe", "/c", "dir"})
	require.NoError(t, err)
	assert.Empty(t, out)

	require.Len(t, runner.calls, 5)
	assert.Equal(t, "VBoxManage startvm forensic-vm --type headless", runner.calls[0])
	assert.Equal(t, "VBoxManage controlvm forensic-vm poweroff", runner.calls[1])
	assert.Contains(t, runner.calls[2], "sharedfolder add forensic-vm")
	assert.Contains(t, runner.calls[2], "--readonly")
	assert.Contains(t, runner.calls[3], "sharedfolder remove forensic-vm")
	assert.Contains(t, runner.calls[4], "guestcontrol forensic-vm run --exe cmd.exe")
}

func TestVBoxExecuteProcessEmpty(t *testing.T) {
	t.Parallel()

	v := NewVBoxWithRunner("vm", &recordingRunner{})
	_, err := v.ExecuteProcess(nil)
	assert.Error(t, err)
}
