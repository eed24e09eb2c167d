// Package config provides the balefile configuration loader.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the target declaration file bale looks for.
const FileName = "bale.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML balefile.
type Loader struct {
	mode   domain.Mode
	logger ports.Logger
}

// NewLoader creates a new Loader for the given build mode.
func NewLoader(mode domain.Mode, logger ports.Logger) *Loader {
	return &Loader{mode: mode, logger: logger}
}

// Load reads the balefile for cwd and returns the populated registry.
// Duplicate names and malformed targets fail here, before any build runs.
func (l *Loader) Load(cwd string) (*domain.Registry, error) {
	configPath, err := l.DiscoverConfigPath(cwd)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- discovered config path
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var balefile Balefile
	if err := yaml.Unmarshal(data, &balefile); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	defaults := resolveDefaults(domain.NewDefaults(l.mode), balefile.Defaults)
	if defaults.Level != "" && !domain.ValidLevel(defaults.Level) {
		return nil, domain.Tag(domain.ErrUnknownLevel, "level", defaults.Level)
	}
	if defaults.Format != "" && !domain.ValidFormat(defaults.Format) {
		return nil, domain.Tag(domain.ErrUnknownFormat, "format", defaults.Format)
	}

	targets := make([]domain.Target, 0, len(balefile.Targets))
	for _, dto := range balefile.Targets {
		if dto == nil {
			continue
		}
		targets = append(targets, domain.Target{
			Name:          dto.Name,
			EntryPoints:   dto.Entry,
			Outfile:       dto.Outfile,
			OutExtensions: dto.OutExtensions,
			External:      dto.External,
			Bundle:        dto.Bundle,
			Minify:        dto.Minify,
			Sourcemap:     dto.Sourcemap,
			Level:         dto.Level,
			Format:        dto.Format,
		})
	}

	if len(targets) == 0 {
		l.logger.Warn("balefile declares no targets")
	}

	return domain.NewRegistry(defaults, targets)
}

// DiscoverConfigPath walks up from cwd until it finds a balefile.
func (l *Loader) DiscoverConfigPath(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", domain.Tag(domain.ErrConfigNotFound, "cwd", cwd)
}

// resolveDefaults applies the file's defaults section on top of the
// build-mode defaults. The external list replaces, it does not union.
func resolveDefaults(base domain.Defaults, dto *DefaultsDTO) domain.Defaults {
	if dto == nil {
		return base
	}
	if dto.Bundle != nil {
		base.Bundle = *dto.Bundle
	}
	if dto.Minify != nil {
		base.Minify = *dto.Minify
	}
	if dto.Sourcemap != nil {
		base.Sourcemap = *dto.Sourcemap
	}
	if dto.Level != "" {
		base.Level = dto.Level
	}
	if dto.Format != "" {
		base.Format = dto.Format
	}
	if dto.External != nil {
		base.External = dto.External
	}
	return base
}
