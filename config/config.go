// Package config loads the shape constants and resolution of the Möbius strip.
//
// Only three keys are recognized:
//
//	radius: 5
//	width: 1
//	resolution: 200
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/notargets/mobius/grid"
	"gopkg.in/yaml.v3"
)

// Config is the construction-time configuration of a surface.
type Config struct {
	Radius     float64 `yaml:"radius" validate:"gt=0"`
	Width      float64 `yaml:"width" validate:"gt=0"`
	Resolution int     `yaml:"resolution" validate:"min=2"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns R = 5, w = 1, n = 200.
func Default() Config {
	return Config{Radius: 5, Width: 1, Resolution: 200}
}

// Load reads a YAML file on top of Default and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that merge other sources
// before calling Validate.
func Read(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return decode(raw)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg, err := decode(raw)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Validate checks the constraints and returns an error wrapping
// grid.ErrInvalidShapeParameter that lists every failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		// gt=0 lets +Inf through.
		return grid.ValidateShape(c.Radius, c.Width, c.Resolution)
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s, got %v", strings.ToLower(fe.Field()), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("config: %w: %s", grid.ErrInvalidShapeParameter, strings.Join(msgs, "; "))
}
