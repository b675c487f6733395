package ports

import "github.com/aretw0/fpgaflow/pkg/cleanup"

// Remover deletes files relative to a directory.
// Files that no longer exist are not an error.
type Remover interface {
	Remove(dir string, files []string) (cleanup.Report, error)
}

// RemoverFunc adapts a function to the Remover interface.
type RemoverFunc func(dir string, files []string) (cleanup.Report, error)

// Remove calls f.
func (f RemoverFunc) Remove(dir string, files []string) (cleanup.Report, error) {
	return f(dir, files)
}
