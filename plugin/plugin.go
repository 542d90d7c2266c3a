// Package plugin defines the plugin container for the svgpress host.
//
// Every feature of the host is a Plugin registered on a Manager. Plugins
// are initialized in registration order and may look each other up by name
// once loaded. Out-of-tree plugins are loaded from shared object files.
package plugin // import "github.com/svgpress/svgpress/plugin"

import (
	goplugin "plugin"
	"sync"

	"github.com/pkg/errors"
)

type Plugin interface {
	Name() string
}

// An InitHandler is notified each time a plugin finishes initializing.
type InitHandler interface {
	HandlePluginInit(Plugin)
}

// A ShutdownHandler is given a chance to clean up when the host stops.
type ShutdownHandler interface {
	HandleShutdown()
}

type Initializer interface {
	Initialize(*Manager) (Plugin, error)
}

type InitializerFunc func(*Manager) (Plugin, error)

func (f InitializerFunc) Initialize(m *Manager) (Plugin, error) {
	return f(m)
}

// InitializeFromFile returns an Initializer that loads a plugin from the
// shared object file at the given path. The file must export an Initialize
// func with the conventional signature.
func InitializeFromFile(p string) Initializer {
	return InitializerFunc(func(m *Manager) (Plugin, error) {
		pl, err := goplugin.Open(p)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open plugin (%s)", p)
		}
		in, err := pl.Lookup("Initialize")
		if err != nil {
			return nil, errors.Wrapf(err, "plugin does not export Initialize (%s)", p)
		}
		fn, ok := in.(func(*Manager) (Plugin, error))
		if !ok {
			return nil, errors.Errorf("plugin has invalid type for Initialize (%s): expected func(*plugin.Manager) (plugin.Plugin, error)", p)
		}
		plg, err := fn(m)
		if err != nil {
			return nil, errors.Wrapf(err, "plugin init failed (%s)", p)
		}
		return plg, nil
	})
}

type Manager struct {
	pending []Initializer

	loaded map[string]Plugin

	onInit []InitHandler

	mu sync.RWMutex
}

func NewManager(paths ...string) *Manager {
	pending := make([]Initializer, len(paths))
	for i, p := range paths {
		pending[i] = InitializeFromFile(p)
	}
	return &Manager{
		pending: pending,
		loaded:  make(map[string]Plugin),
	}
}

func (m *Manager) OnPluginInit(h InitHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onInit = append(m.onInit, h)
}

func (m *Manager) Lookup(name string) (Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if plg, ok := m.loaded[name]; ok {
		return plg, nil
	}
	return nil, errors.Errorf("no plugin named %s", name)
}

func (m *Manager) Register(initfn Initializer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, initfn)
}

func (m *Manager) RegisterFunc(initfn func(m *Manager) (Plugin, error)) {
	m.Register(InitializerFunc(initfn))
}

// Configure initializes all pending plugins. Initialization continues past
// individual failures; all errors encountered are returned together.
func (m *Manager) Configure() []error {
	var errs []error
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	if len(pending) == 0 {
		return errs
	}
	for _, p := range pending {
		m.mu.RLock()
		// take a fresh copy of init handlers before each init; plugins may
		// add handlers in this loop and those should be accounted for on
		// subsequent inits.
		inits := append([]InitHandler{}, m.onInit...)
		m.mu.RUnlock()
		// the Manager stays unlocked while the plugin initializes; the
		// plugin is free to use the Manager itself during init.
		plg, err := p.Initialize(m)
		if err != nil {
			errs = append(errs, errors.Wrap(err, "plugin init failed"))
			continue
		}
		pn := plg.Name()
		m.mu.Lock()
		_, ok := m.loaded[pn]
		if !ok {
			m.loaded[pn] = plg
		}
		m.mu.Unlock()
		if ok {
			errs = append(errs, errors.Errorf("plugin already loaded %s", pn))
			continue
		}
		for _, h := range inits {
			h.HandlePluginInit(plg)
		}
		// loaded plugins observe every later plugin init.
		if ih, ok := plg.(InitHandler); ok {
			m.OnPluginInit(ih)
		}
	}
	return errs
}

// Shutdown notifies every loaded plugin that implements ShutdownHandler.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	loaded := make([]Plugin, 0, len(m.loaded))
	for _, plg := range m.loaded {
		loaded = append(loaded, plg)
	}
	m.mu.RUnlock()
	for _, plg := range loaded {
		if sh, ok := plg.(ShutdownHandler); ok {
			sh.HandleShutdown()
		}
	}
}
