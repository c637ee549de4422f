package doctor

import (
	"context"
	"fmt"
	"os"
)

// StorageCheck verifies the audio directory can hold synthesized files.
type StorageCheck struct {
	dir string
}

// NewStorageCheck creates a check for the audio directory.
func NewStorageCheck(dir string) *StorageCheck {
	return &StorageCheck{dir: dir}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(c.dir)
	switch {
	case os.IsNotExist(err):
		result.Items = append(result.Items, warn(c.dir, "directory does not exist yet"))
		return result
	case err != nil:
		result.Items = append(result.Items, fail(c.dir, fmt.Sprintf("inaccessible: %v", err)))
		return result
	case !info.IsDir():
		result.Items = append(result.Items, fail(c.dir, "path is not a directory"))
		return result
	}

	f, err := os.CreateTemp(c.dir, ".doctor-*")
	if err != nil {
		result.Items = append(result.Items, fail(c.dir, fmt.Sprintf("not writable: %v", err)))
		return result
	}
	_ = f.Close()
	_ = os.Remove(f.Name())

	result.Items = append(result.Items, pass(c.dir, "writable"))
	return result
}
