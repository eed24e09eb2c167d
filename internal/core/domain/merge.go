package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// Merge flattens the shared defaults, one target declaration and optional
// caller overrides into the configuration handed to the engine.
//
// The merge is shallow with strict precedence: overrides beat the target,
// the target beats the defaults. List-valued fields (entry points, the
// external set) are atomic: a target's own external set replaces the shared
// one outright, it is never unioned with it. Engines rely on the replacement
// to decide what ships inside an artifact versus what is resolved at
// install time, so do not "fix" this into a union.
func Merge(defaults Defaults, target Target, overrides Overrides) (EffectiveConfig, error) {
	if err := Validate(target); err != nil {
		return EffectiveConfig{}, err
	}

	cfg := EffectiveConfig{
		Name:          target.Name,
		EntryPoints:   slices.Clone(target.EntryPoints),
		Outfile:       target.Outfile,
		OutExtensions: maps.Clone(target.OutExtensions),
		External:      slices.Clone(defaults.External),
		Bundle:        defaults.Bundle,
		Minify:        defaults.Minify,
		Sourcemap:     defaults.Sourcemap,
		Level:         defaults.Level,
		Format:        defaults.Format,
	}

	if target.External != nil {
		cfg.External = slices.Clone(target.External)
	}
	if target.Bundle != nil {
		cfg.Bundle = *target.Bundle
	}
	if target.Minify != nil {
		cfg.Minify = *target.Minify
	}
	if target.Sourcemap != nil {
		cfg.Sourcemap = *target.Sourcemap
	}
	if target.Level != "" {
		cfg.Level = target.Level
	}
	if target.Format != "" {
		cfg.Format = target.Format
	}

	if overrides.External != nil {
		cfg.External = slices.Clone(overrides.External)
	}
	if overrides.Minify != nil {
		cfg.Minify = *overrides.Minify
	}
	if overrides.Sourcemap != nil {
		cfg.Sourcemap = *overrides.Sourcemap
	}
	if overrides.Level != "" {
		cfg.Level = overrides.Level
	}
	if overrides.Format != "" {
		cfg.Format = overrides.Format
	}

	if !ValidLevel(cfg.Level) {
		return EffectiveConfig{}, Tag(ErrUnknownLevel, "level", cfg.Level)
	}
	if !ValidFormat(cfg.Format) {
		return EffectiveConfig{}, Tag(ErrUnknownFormat, "format", cfg.Format)
	}

	return cfg, nil
}

// Validate checks a single target declaration. An empty entry point list is
// the one way a declared target can be malformed on its own.
func Validate(target Target) error {
	if target.Name == "" {
		return Tag(ErrInvalidTargetConfig, "reason", "missing name")
	}
	if len(target.EntryPoints) == 0 {
		return Tag(ErrInvalidTargetConfig, "target", target.Name)
	}
	if target.Outfile == "" {
		return zerr.With(Tag(ErrInvalidTargetConfig, "target", target.Name), "reason", "missing outfile")
	}
	if target.Level != "" && !ValidLevel(target.Level) {
		return zerr.With(Tag(ErrUnknownLevel, "target", target.Name), "level", target.Level)
	}
	if target.Format != "" && !ValidFormat(target.Format) {
		return zerr.With(Tag(ErrUnknownFormat, "target", target.Name), "format", target.Format)
	}
	return nil
}
