//go:build windows

package pluginhost

import "github.com/pkg/errors"

// LoadFromPath is unsupported on Windows: the standard library's plugin
// package only implements the ELF/Mach-O dynamic loading path.
func LoadFromPath(path string) (Plugin, error) {
	return nil, errors.Errorf("dynamic plugin loading is not supported on this platform (plugin %q)", path)
}
