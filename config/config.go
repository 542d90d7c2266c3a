// Package config is a small configuration framework for svgpress plugins.
//
// Configuration is organized into named sections, one section per plugin.
// Each section is backed by a struct (or a plain map) whose fields are kept
// in sync via reflection as values change. Values may be populated from a
// TOML file and validated against declared required options.
//
// Use config.New or config.Wrap to create a root section:
//
//	type Config struct {
//	    Name string
//	    Bio  *struct {
//	        Age int
//	    }
//	}
//	co := &Config{"tina", &struct{ Age int }{30}}
//	c, err := config.Wrap(co,
//	    config.WithRequiredOption("Name"),
//	    config.WithGenericSection("Bio", config.WithInitValue(co.Bio)))
package config // import "github.com/svgpress/svgpress/config"

// A Value is some value stored in a configuration.
type Value interface{}

// A Config represents a single, configured section.
//
// Configs are collections of Values, each addressed by a key. Configs may
// be nested within other Configs using sections.
type Config interface {
	// Self returns the Value stored for the Config itself.
	Self() Value
	// Get returns the Value stored with the given key.
	// The second return parameter is false if the given key is unset.
	Get(key string) (Value, bool)
	// String returns the string stored with the given key.
	String(key string) (string, bool)
	// Bool returns the bool stored with the given key.
	Bool(key string) (bool, bool)
	// Int returns the int stored with the given key.
	Int(key string) (int, bool)
	// Set sets the given key to the given Value.
	Set(key string, val Value)

	// Section returns the nested configuration for the given key.
	Section(key string) (Config, error)
}

// New creates and populates a new Config using the given options.
func New(options ...SetupOption) (Config, error) {
	s := newSetup("root", nil)
	if err := s.apply(options...); err != nil {
		return nil, err
	}
	if err := build(s); err != nil {
		return nil, err
	}
	return s.config, s.validate()
}

// Wrap creates and populates a new Config using the given Value as the
// stored representation of the configuration.
func Wrap(wrapped Value, options ...SetupOption) (Config, error) {
	return New(append([]SetupOption{WithInitValue(wrapped)}, options...)...)
}
