// Package slackspace computes and manipulates file slack space: the unused
// bytes between a file's actual end and the end of its last allocated
// cluster on disk.
package slackspace

import (
	"fmt"
	"os"
)

// Meta describes the slack space of one file. It is the unit the analyze
// and write operations exchange.
type Meta struct {
	// ActualSize is the file size as reported by the filesystem.
	ActualSize int64

	// AllocatedSize is the total size of the file's allocated clusters,
	// which is the actual size rounded up to a cluster boundary.
	AllocatedSize int64

	// SlackSpace is AllocatedSize - ActualSize.
	SlackSpace int64

	// FinalExtentOffset is the offset of the beginning of the file's last
	// cluster, relative to the start of the filesystem.
	FinalExtentOffset int64

	// FinalExtentSize is the allocated size of the last cluster.
	FinalExtentSize int64

	// SlackOffset is the absolute offset where slack space begins:
	// FinalExtentOffset plus the used portion of the final cluster.
	SlackOffset int64

	// IsResident marks files with no allocated clusters. Slack operations
	// on resident files are rejected.
	IsResident bool

	// IsSparse marks files whose allocated size is below the actual size.
	// Calculated offsets are unreliable for them.
	IsSparse bool
}

// Analyze computes slack metadata for a file region of actualSize bytes
// that starts at fileOffset on the image, with the given cluster size. The
// calculation assumes all slack sits at the end of the final cluster.
func Analyze(fileOffset, actualSize, clusterSize int64) (*Meta, error) {
	if clusterSize <= 0 {
		return nil, fmt.Errorf("cluster size must be positive, got %d", clusterSize)
	}
	if actualSize < 0 {
		return nil, fmt.Errorf("actual size must be non-negative, got %d", actualSize)
	}

	clusters := actualSize / clusterSize
	if actualSize%clusterSize != 0 {
		clusters++
	}
	allocated := clusters * clusterSize

	meta := &Meta{
		ActualSize:    actualSize,
		AllocatedSize: allocated,
		SlackSpace:    allocated - actualSize,
		IsResident:    allocated == 0,
		IsSparse:      allocated < actualSize,
	}
	if !meta.IsResident {
		meta.FinalExtentSize = clusterSize
		meta.FinalExtentOffset = fileOffset + (clusters-1)*clusterSize
		meta.SlackOffset = meta.FinalExtentOffset + meta.FinalExtentSize - meta.SlackSpace
	}
	return meta, nil
}

// AnalyzeFile computes slack metadata for a regular file, treating the file
// itself as the image region at offset zero.
func AnalyzeFile(path string, clusterSize int64) (*Meta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return Analyze(0, info.Size(), clusterSize)
}

// Write places data into previously computed slack space of the image at
// imagePath. Writes into resident or sparse files are rejected, as is data
// larger than the slack run.
func Write(imagePath string, meta *Meta, data []byte) error {
	switch {
	case meta.IsResident:
		return fmt.Errorf("file is resident, it has no slack space")
	case meta.IsSparse:
		return fmt.Errorf("file is sparse, slack offsets are unreliable")
	case int64(len(data)) > meta.SlackSpace:
		return fmt.Errorf("payload of %d bytes exceeds %d bytes of slack space", len(data), meta.SlackSpace)
	}

	f, err := os.OpenFile(imagePath, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteAt(data, meta.SlackOffset); err != nil {
		return fmt.Errorf("writing slack payload: %w", err)
	}
	return nil
}
