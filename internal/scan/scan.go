// Package scan enumerates the regular files of a project source tree.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileType classifies a directory entry.
type FileType int

const (
	// Unknown is reported when the entry cannot be probed (broken symlink,
	// entry removed mid-walk, permission denied on stat).
	Unknown FileType = iota
	// File is a regular file.
	File
	// Directory is a directory.
	Directory
)

// String returns the lowercase name of the file type.
func (t FileType) String() string {
	switch t {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "unknown"
	}
}

// AccessError reports a directory or file that could not be read.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Probe stats path (following symlinks) and classifies it.
// It never fails; unreadable entries are Unknown.
func Probe(path string) FileType {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown
	}
	switch {
	case info.Mode().IsRegular():
		return File
	case info.IsDir():
		return Directory
	default:
		return Unknown
	}
}

// ListFiles returns every regular file below root, depth first, in the order
// the directory listing yields entries. Unknown entries are skipped.
// An unreadable directory aborts the listing with an *AccessError.
func ListFiles(root string) ([]string, error) {
	var files []string
	if err := listInto(root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func listInto(dir string, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &AccessError{Path: dir, Err: err}
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch Probe(path) {
		case File:
			*files = append(*files, path)
		case Directory:
			if err := listInto(path, files); err != nil {
				return err
			}
		default:
			// dangling symlinks, sockets, devices
		}
	}
	return nil
}
