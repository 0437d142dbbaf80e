package bridge

import "plugin"

// PluginSymbolLookup resolves symbols from an already-opened Go plugin —
// the production SymbolLookup when the accelerator runtime ships as a Go
// plugin object loaded once at process start. This is the only stdlib
// mechanism in the whole retrieval pack that performs process-symbol-table
// lookup by name; see DESIGN.md.
type PluginSymbolLookup struct {
	Plugin *plugin.Plugin
}

func (p PluginSymbolLookup) Lookup(name string) (Symbol, bool) {
	sym, err := p.Plugin.Lookup(name)
	if err != nil {
		return nil, false
	}
	return sym, true
}

// OpenPluginSymbolLookup opens the accelerator's plugin object and wraps
// it as a SymbolLookup in one step.
func OpenPluginSymbolLookup(path string) (PluginSymbolLookup, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return PluginSymbolLookup{}, err
	}
	return PluginSymbolLookup{Plugin: p}, nil
}
