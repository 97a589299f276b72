package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// isPolicyFile reports whether name is a Rego module of the bundle. Hidden
// files are skipped so editor swap and lock files never reach the compiler.
func isPolicyFile(name string) bool {
	return !strings.HasPrefix(name, ".") && filepath.Ext(name) == ".rego"
}

// LoadRegoFiles reads the bundle's top-level .rego files, keyed by file name.
// Subdirectories are not descended into.
func LoadRegoFiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read policy dir %s: %w", dir, err)
	}
	modules := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isPolicyFile(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read policy %s: %w", entry.Name(), err)
		}
		modules[entry.Name()] = string(data)
	}
	return modules, nil
}
