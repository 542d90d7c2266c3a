package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// WithGenericSection adds a nested section with the given name and options.
func WithGenericSection(name string, options ...SetupOption) SetupOption {
	return func(s *Setup) error {
		if _, ok := s.sections[name]; ok {
			return errors.Errorf("section %q already exists", name)
		}
		ns := newSetup(name, s)
		if err := ns.apply(options...); err != nil {
			return err
		}
		s.sections[name] = ns
		return nil
	}
}

// WithInitValue uses the given Value as the starting point for the section.
// Initial values are updated via reflection and kept in sync with changes
// made to the Config.
func WithInitValue(value Value) SetupOption {
	return func(s *Setup) error {
		s.initial = value
		return nil
	}
}

// WithOption declares an optional option on the Config.
func WithOption(name string) SetupOption {
	return WithOptions(name)
}

// WithOptions declares multiple optional options on the Config.
func WithOptions(names ...string) SetupOption {
	return func(s *Setup) error {
		for _, n := range names {
			s.options[n] = false
		}
		return nil
	}
}

// WithRequiredOption declares a required option on the Config.
func WithRequiredOption(name string) SetupOption {
	return WithRequiredOptions(name)
}

// WithRequiredOptions declares multiple required options on the Config.
func WithRequiredOptions(names ...string) SetupOption {
	return func(s *Setup) error {
		for _, n := range names {
			s.options[n] = true
		}
		return nil
	}
}

// WithValuesFromTOMLFile populates the Config with values parsed from a
// TOML file. A missing file is not an error; the Config keeps its initial
// values.
func WithValuesFromTOMLFile(filename string) SetupOption {
	return func(s *Setup) error {
		s.addPostSetup(func(s *Setup) error {
			if s.raw == nil {
				s.raw = make(map[string]interface{})
			}
			if _, err := toml.DecodeFile(filename, &s.raw); err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			return nil
		})
		return nil
	}
}
