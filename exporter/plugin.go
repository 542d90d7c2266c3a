package exporter

import (
	"github.com/pkg/errors"

	"github.com/svgpress/svgpress/config"
	"github.com/svgpress/svgpress/event"
	"github.com/svgpress/svgpress/plugin"
)

const pluginName = "exporter"

func pluginFromPlugins(m *plugin.Manager) (*exporterPlugin, error) {
	p, err := m.Lookup(pluginName)
	if err != nil {
		return nil, err
	}
	mp, ok := p.(*exporterPlugin)
	if !ok {
		return nil, errors.Errorf("%s: received unexpected plugin type", pluginName)
	}
	return mp, nil
}

func FromPlugins(m *plugin.Manager) (*Watcher, error) {
	mp, err := pluginFromPlugins(m)
	if err != nil {
		return nil, err
	}
	if mp.watcher == nil {
		return nil, errors.Errorf("%s: plugin is not configured", pluginName)
	}
	return mp.watcher, nil
}

func Initialize(m *plugin.Manager) (plugin.Plugin, error) {
	ev, err := event.FromPlugins(m)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: missing required dependency (event)", pluginName)
	}
	return &exporterPlugin{events: ev}, nil
}

type exporterPlugin struct {
	events *event.Dispatcher

	watcher *Watcher
}

func (p *exporterPlugin) Configure(c config.Config) error {
	co, err := configFromGeneric(c)
	if err != nil {
		return err
	}
	p.watcher = NewWatcher(co, p.events)
	return nil
}

func configFromGeneric(g config.Config) (c *Config, err error) {
	if gcv, ok := g.Self().(*Config); ok {
		return gcv, nil
	}
	return c, errors.Errorf("%s: value is not a *exporter.Config", pluginName)
}

func (p *exporterPlugin) Options() []config.SetupOption {
	return []config.SetupOption{
		config.WithInitValue(&Config{}),
		config.WithOptions("roots", "settle_ms")}
}

func (p *exporterPlugin) Name() string {
	return pluginName
}

func (p *exporterPlugin) HandleShutdown() {
	if p.watcher != nil {
		// the watcher may never have been started; Stop is a no-op then.
		_ = p.watcher.Stop()
	}
}
