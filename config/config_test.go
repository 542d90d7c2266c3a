package config_test

import (
	"testing"

	"github.com/svgpress/svgpress/config"
)

func TestWrap(t *testing.T) {
	type Config struct {
		Name string
		Bio  *struct {
			Age int
		}
	}
	co := &Config{"tina", &struct{ Age int }{30}}
	c, err := config.Wrap(co,
		config.WithRequiredOption("Name"),
		config.WithGenericSection("Bio", config.WithInitValue(co.Bio), config.WithRequiredOption("Age")))
	if err != nil {
		t.Errorf("expected config to be valid, but got error: %s", err)
		return
	}
	n, ok := c.String("Name")
	if !ok {
		t.Errorf("expected name to be a string")
		return
	}
	if n != "tina" {
		t.Errorf("expected name to be tina, got %s", n)
	}
	b, err := c.Section("Bio")
	if err != nil {
		t.Errorf("expected config to be valid, but got error: %s", err)
		return
	}
	a, ok := b.Int("Age")
	if !ok {
		t.Errorf("expected age to be an int")
		return
	}
	if a != 30 {
		t.Errorf("expected age to be 30, got %d", a)
	}
}

func TestWrap_RequiredOptionEmpty(t *testing.T) {
	type Config struct {
		Name string
	}
	_, err := config.Wrap(&Config{}, config.WithRequiredOption("Name"))
	if err == nil {
		t.Errorf("expected an error for empty required option")
	}
}

func TestWrap_SetSyncsStruct(t *testing.T) {
	type Config struct {
		Binary string `toml:"binary"`
	}
	co := &Config{"/usr/local/bin/svgo"}
	c, err := config.Wrap(co)
	if err != nil {
		t.Fatalf("expected config to be valid, but got error: %s", err)
	}
	c.Set("binary", "/opt/svgo/bin/svgo")
	if co.Binary != "/opt/svgo/bin/svgo" {
		t.Errorf("expected struct to track config changes, got %s", co.Binary)
	}
}
