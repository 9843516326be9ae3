// Package files discovers backtest report files and groups them by the
// suffix of their file name.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/username/parsegbx/src/logger"
)

// FileInfo represents information about a discovered report file
type FileInfo struct {
	Path    string
	Name    string
	Stem    string
	Size    int64
	ModTime time.Time
}

// Groups maps a group name to its files, sorted by name.
type Groups map[string][]FileInfo

// Select returns the index-th file of group.
func (g Groups) Select(group string, index int) (FileInfo, error) {
	files, ok := g[group]
	if !ok {
		return FileInfo{}, fmt.Errorf("unknown group %q", group)
	}
	if index < 0 || index >= len(files) {
		return FileInfo{}, fmt.Errorf("group %q has %d files, index %d out of range", group, len(files), index)
	}
	return files[index], nil
}

// Names returns the group names in sorted order.
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classifier assigns report files to named groups.
type Classifier struct {
	groups       []string
	defaultGroup string
	extension    string
}

// NewClassifier creates a classifier. A file whose stem ends in "_<group>"
// belongs to the first such group in the given order; every other file with
// the extension goes to defaultGroup.
func NewClassifier(groups []string, defaultGroup, extension string) *Classifier {
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return &Classifier{
		groups:       append([]string(nil), groups...),
		defaultGroup: defaultGroup,
		extension:    extension,
	}
}

// Classify scans the regular files directly inside dir. A missing directory
// is reported and yields empty groups.
func (c *Classifier) Classify(dir string) (Groups, error) {
	groups := c.emptyGroups()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.L.Warn("Directory does not exist", "dir", dir)
			return groups, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	// os.ReadDir returns entries sorted by file name.
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, c.extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.L.Warn("Skipping unreadable file", "file", name, "error", err)
			continue
		}

		stem := strings.TrimSuffix(name, ext)
		file := FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Stem:    stem,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		group := c.groupOf(stem)
		groups[group] = append(groups[group], file)
	}

	logger.L.Debug("Classified report files", "dir", dir, "groups", len(groups))
	return groups, nil
}

func (c *Classifier) groupOf(stem string) string {
	for _, g := range c.groups {
		if strings.HasSuffix(stem, "_"+g) {
			return g
		}
	}
	return c.defaultGroup
}

func (c *Classifier) emptyGroups() Groups {
	groups := make(Groups, len(c.groups)+1)
	for _, g := range c.groups {
		groups[g] = []FileInfo{}
	}
	groups[c.defaultGroup] = []FileInfo{}
	return groups
}
