package config

import (
	"fmt"

	"github.com/pkg/errors"
)

// A SetupOption is a function that modifies the given Setup in some way.
type SetupOption func(s *Setup) error

// Setup is a container struct describing how to build a Config section.
type Setup struct {
	name    string
	initial Value
	config  Config

	parent *Setup

	// raw holds values loaded from external sources, eg. a TOML file.
	raw map[string]interface{}

	sections map[string]*Setup
	options  map[string]bool

	// post options run after all regular options have been applied, once
	// the section and option metadata is complete.
	post []SetupOption
}

func newSetup(name string, parent *Setup) *Setup {
	return &Setup{
		name:     name,
		parent:   parent,
		raw:      make(map[string]interface{}),
		sections: make(map[string]*Setup),
		options:  make(map[string]bool),
	}
}

func (s *Setup) addPostSetup(options ...SetupOption) {
	s.post = append(s.post, options...)
}

// apply calls each SetupOption, halting on the first error encountered.
func (s *Setup) apply(options ...SetupOption) error {
	// clear post options, they will be re-added by the regular options.
	s.post = nil
	for _, o := range options {
		if err := o(s); err != nil {
			return err
		}
	}
	for _, o := range s.post {
		if err := o(s); err != nil {
			return err
		}
	}
	return nil
}

// validate checks that all required options are set, recursively.
func (s *Setup) validate() error {
	if s.config == nil {
		return errors.New("expected config to be populated, found nil")
	}
	for o, required := range s.options {
		if !required {
			continue
		}
		v, ok := s.config.Get(o)
		if !ok || v == nil {
			return errors.Errorf("required option %q is empty", o)
		}
		if vs, ok := v.(string); ok && len(vs) == 0 {
			return errors.Errorf("required option %q is empty", o)
		}
	}
	for sn, ss := range s.sections {
		if err := ss.validate(); err != nil {
			return errors.Wrapf(err, "config %q contains an invalid section %q", s.name, sn)
		}
	}
	return nil
}

// build populates the Config for the Setup and all nested sections.
func build(s *Setup) error {
	wrapErr := func(err error) error {
		if s.name != "root" {
			return errors.WithMessage(err, fmt.Sprintf("section %s", s.name))
		}
		return err
	}
	if isNil(s.initial) && s.parent != nil {
		if vo, ok := s.parent.config.Get(s.name); ok {
			s.initial = vo
		}
	}
	if isNil(s.initial) {
		s.initial = make(map[string]interface{})
	}
	if rc, ok := s.initial.(Config); ok {
		s.config = rc
	} else {
		co, err := newMirrored(s)
		if err != nil {
			return wrapErr(err)
		}
		s.config = co
	}
	for _, ns := range s.sections {
		if v, ok := s.raw[ns.name].(map[string]interface{}); ok {
			ns.raw = v
		}
		if err := build(ns); err != nil {
			return wrapErr(err)
		}
		s.config.Set(ns.name, ns.config)
	}
	return nil
}
