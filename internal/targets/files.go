package targets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidName is returned for stored list names that are not a plain file
// name inside the targets directory.
var ErrInvalidName = errors.New("invalid target file name")

// File describes a stored target list.
type File struct {
	Name  string `json:"name"`
	Lines int    `json:"lines"`
}

var listExtensions = map[string]bool{".txt": true, ".csv": true, ".xlsx": true}

// ListFiles returns the target lists in dir sorted by name. Lines counts
// non-empty lines and is zero for spreadsheets.
func ListFiles(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read targets dir: %w", err)
	}

	var out []File
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || !listExtensions[ext] {
			continue
		}
		f := File{Name: e.Name()}
		if ext != ".xlsx" {
			data, readErr := os.ReadFile(filepath.Join(dir, e.Name()))
			if readErr != nil {
				return nil, fmt.Errorf("read %s: %w", e.Name(), readErr)
			}
			for _, line := range bytes.Split(data, []byte("\n")) {
				if len(bytes.TrimSpace(line)) > 0 {
					f.Lines++
				}
			}
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ValidName reports whether name is a bare stored-list file name: no
// directory part, no dot segment and a list extension.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !filepath.IsAbs(name) && filepath.VolumeName(name) == "" &&
		listExtensions[strings.ToLower(filepath.Ext(name))]
}

// ResolveStored returns dir/name for a stored list. Names failing ValidName
// are rejected with ErrInvalidName.
func ResolveStored(dir, name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("targets file not found: %s", name)
	}
	return path, nil
}
