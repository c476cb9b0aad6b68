//go:build !windows

package pluginhost

import (
	"plugin"

	"github.com/pkg/errors"
)

// symbolName is the exported symbol every chain plugin must provide: a
// package-level variable implementing Plugin.
const symbolName = "FconcatPlugin"

// LoadFromPath dynamically loads a plugin from a compiled Go plugin (.so)
// file at path, using the standard library's plugin package. The plugin
// must export a package-level symbol named "FconcatPlugin" implementing the
// Plugin interface.
func LoadFromPath(path string) (Plugin, error) {
	opened, err := plugin.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open plugin %q", path)
	}
	symbol, err := opened.Lookup(symbolName)
	if err != nil {
		return nil, errors.Wrapf(err, "plugin %q does not export %s", path, symbolName)
	}
	p, ok := symbol.(Plugin)
	if !ok {
		return nil, errors.Errorf("plugin %q: %s does not implement the Plugin interface", path, symbolName)
	}
	return p, nil
}
