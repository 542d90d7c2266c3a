package optimize

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/svgpress/svgpress/config"
	"github.com/svgpress/svgpress/event"
	"github.com/svgpress/svgpress/exporter"
	"github.com/svgpress/svgpress/plugin"
)

const pluginName = "optimize"

type Config struct {
	SVGOPath     string `toml:"svgo_path"`
	Player       string `toml:"player"`
	SuccessSound string `toml:"success_sound"`
	FailureSound string `toml:"failure_sound"`
}

func FromPlugins(m *plugin.Manager) (*Manager, error) {
	p, err := m.Lookup(pluginName)
	if err != nil {
		return nil, err
	}
	mp, ok := p.(*optimizePlugin)
	if !ok {
		return nil, errors.Errorf("%s: received unexpected plugin type", pluginName)
	}
	if mp.manager == nil {
		return nil, errors.Errorf("%s: plugin is not configured", pluginName)
	}
	return mp.manager, nil
}

func Initialize(m *plugin.Manager) (plugin.Plugin, error) {
	ev, err := event.FromPlugins(m)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: missing required dependency (event)", pluginName)
	}
	return &optimizePlugin{events: ev}, nil
}

type optimizePlugin struct {
	events *event.Dispatcher

	manager *Manager
}

func (p *optimizePlugin) Configure(c config.Config) error {
	co, err := configFromGeneric(c)
	if err != nil {
		return err
	}
	p.manager = NewManager(co)
	p.events.Bind(exporter.Finished, event.HandlerFunc(p.handleEvent))
	return nil
}

func (p *optimizePlugin) handleEvent(ev *event.Event) {
	b, ok := ev.Data["batch"].(*exporter.Batch)
	if !ok {
		logrus.Warnf("%s: %s event carried unexpected payload %T", pluginName, ev.Name, ev.Data["batch"])
		return
	}
	p.manager.HandleExportFinished(b)
}

func configFromGeneric(g config.Config) (c *Config, err error) {
	if gcv, ok := g.Self().(*Config); ok {
		return gcv, nil
	}
	return c, errors.Errorf("%s: value is not a *optimize.Config", pluginName)
}

func (p *optimizePlugin) Options() []config.SetupOption {
	return []config.SetupOption{
		config.WithInitValue(&Config{}),
		config.WithOptions("svgo_path", "player", "success_sound", "failure_sound")}
}

func (p *optimizePlugin) Name() string {
	return pluginName
}
