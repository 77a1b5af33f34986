package slackspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		offset      int64
		actual      int64
		cluster     int64
		wantAlloc   int64
		wantSlack   int64
		wantSlackAt int64
		resident    bool
	}{
		{name: "partial final cluster", offset: 0, actual: 5000, cluster: 4096, wantAlloc: 8192, wantSlack: 3192, wantSlackAt: 5000},
		{name: "exact cluster fit", offset: 0, actual: 8192, cluster: 4096, wantAlloc: 8192, wantSlack: 0, wantSlackAt: 8192},
		{name: "offset region", offset: 10000, actual: 100, cluster: 512, wantAlloc: 512, wantSlack: 412, wantSlackAt: 10100},
		{name: "empty file is resident", offset: 0, actual: 0, cluster: 4096, wantAlloc: 0, wantSlack: 0, resident: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			meta, err := Analyze(tt.offset, tt.actual, tt.cluster)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAlloc, meta.AllocatedSize)
			assert.Equal(t, tt.wantSlack, meta.SlackSpace)
			assert.Equal(t, tt.resident, meta.IsResident)
			if !tt.resident {
				assert.Equal(t, tt.wantSlackAt, meta.SlackOffset)
			}
		})
	}

	_, err := Analyze(0, 100, 0)
	assert.Error(t, err)
}

func TestWriteIntoSlack(t *testing.T) {
	t.Parallel()

	// One 8 KiB image, file data of 5000 bytes, 4096-byte clusters.
	image := filepath.Join(t.TempDir(), "disk.raw")
	require.NoError(t, os.WriteFile(image, make([]byte, 8192), 0o600))

	meta, err := Analyze(0, 5000, 4096)
	require.NoError(t, err)

	payload := []byte("hidden payload")
	require.NoError(t, Write(image, meta, payload))

	raw, err := os.ReadFile(image)
	require.NoError(t, err)
	assert.Equal(t, payload, raw[meta.SlackOffset:meta.SlackOffset+int64(len(payload))])

	// The payload must not be able to spill past the cluster end.
	tooBig := make([]byte, meta.SlackSpace+1)
	assert.Error(t, Write(image, meta, tooBig))
}

func TestWriteRejectsResident(t *testing.T) {
	t.Parallel()

	meta, err := Analyze(0, 0, 4096)
	require.NoError(t, err)
	assert.Error(t, Write("irrelevant", meta, []byte("x")))
}

func TestAnalyzeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o600))

	meta, err := AnalyzeFile(path, 512)
	require.NoError(t, err)
	assert.Equal(t, int64(100), meta.ActualSize)
	assert.Equal(t, int64(512), meta.AllocatedSize)
	assert.Equal(t, int64(412), meta.SlackSpace)
}
