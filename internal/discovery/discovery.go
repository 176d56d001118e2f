// Package discovery enumerates systemd service unit files across the
// well-known unit directories.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/initkit/sysvgen/internal/log"
)

// ServiceFile is one discovered unit file.
type ServiceFile struct {
	Name string // base file name, e.g. "nginx.service"
	Path string // absolute path it was found at
}

// Finder locates service unit files under a priority-ordered list of
// search paths.
type Finder struct {
	searchPaths []string
	logger      log.Logger
}

// NewFinder creates a Finder over the given search paths. Earlier
// entries win when the same service name appears in several
// directories.
func NewFinder(searchPaths []string, logger log.Logger) *Finder {
	return &Finder{
		searchPaths: searchPaths,
		logger:      logger,
	}
}

// Find returns all candidate unit files, sorted by name. Each search
// directory is scanned along with its .wants and .requires
// subdirectories. Empty and non-regular files are skipped, and
// duplicate names are resolved in favor of the earliest search path.
func (f *Finder) Find() ([]ServiceFile, error) {
	var paths []string

	for _, dir := range f.searchPaths {
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		matches, err := filepath.Glob(filepath.Join(dir, "*.service"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)

		for _, subPattern := range []string{"*.wants", "*.requires"} {
			subdirs, err := filepath.Glob(filepath.Join(dir, subPattern))
			if err != nil {
				return nil, err
			}
			for _, subdir := range subdirs {
				info, err := os.Stat(subdir)
				if err != nil || !info.IsDir() {
					continue
				}
				matches, err := filepath.Glob(filepath.Join(subdir, "*.service"))
				if err != nil {
					return nil, err
				}
				paths = append(paths, matches...)
			}
		}
	}

	seen := make(map[string]struct{})
	var services []ServiceFile

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
			f.logger.Debug("Skipping unit file", "path", path)
			continue
		}

		name := filepath.Base(path)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		services = append(services, ServiceFile{Name: name, Path: path})
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})

	return services, nil
}
