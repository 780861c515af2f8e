package deployment_controller

import (
	"os"
)

// Filesystem is what the catalog probes and lists. Implementations must be
// safe for concurrent use.
type Filesystem interface {
	// Stat reports metadata for a single entry.
	Stat(path string) (os.FileInfo, error)
	// ReadDir returns the names of the direct children of a directory, in the
	// order the filesystem enumerates them.
	ReadDir(path string) ([]string, error)
}

type osFilesystem struct{}

var OsFilesystem Filesystem = osFilesystem{}

func (osFilesystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (osFilesystem) ReadDir(path string) ([]string, error) {
	// os.ReadDir sorts, we want enumeration order
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = make([]string, 0)
	}
	return names, nil
}
