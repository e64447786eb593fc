package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Kothajagadish22/Gemini-Finance-AI/core"
)

// MinFreeBytes is the free space below which the output directory is flagged.
const MinFreeBytes = 10 * core.BytesPerMB

// DiskSpaceInfo contains information about disk space.
type DiskSpaceInfo struct {
	Path          string
	Total         int64
	Free          int64
	FreeFormatted string
}

// DiskSpaceError indicates a disk space problem.
type DiskSpaceError struct {
	Path      string
	Required  int64
	Available int64
	Message   string
}

func (e *DiskSpaceError) Error() string {
	return e.Message
}

// GetDiskSpace returns disk space for the filesystem holding path. A path
// that does not exist yet is resolved to its nearest existing parent.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	if path == "" {
		path = "."
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			parent := filepath.Dir(path)
			if parent != path {
				return GetDiskSpace(parent)
			}
		}
		return nil, fmt.Errorf("cannot access path %s: %w", path, err)
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}

	total, free, err := getDiskSpace(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk space for %s: %w", path, err)
	}

	return &DiskSpaceInfo{
		Path:          path,
		Total:         total,
		Free:          free,
		FreeFormatted: core.FormatBytes(free),
	}, nil
}

// CheckDiskSpace returns a *DiskSpaceError when less than requiredBytes are
// free at path.
func CheckDiskSpace(path string, requiredBytes int64) error {
	info, err := GetDiskSpace(path)
	if err != nil {
		return err
	}

	if info.Free < requiredBytes {
		return &DiskSpaceError{
			Path:      path,
			Required:  requiredBytes,
			Available: info.Free,
			Message: fmt.Sprintf("insufficient disk space at %s: need %s, have %s free",
				path, core.FormatBytes(requiredBytes), info.FreeFormatted),
		}
	}
	return nil
}
