package esbuild

import (
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bale/internal/core/domain"
)

var levels = map[string]api.Target{
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

var formats = map[string]api.Format{
	domain.FormatESM:  api.FormatESModule,
	domain.FormatCJS:  api.FormatCommonJS,
	domain.FormatIIFE: api.FormatIIFE,
}

// buildOptions maps an effective configuration onto esbuild's options.
// The engine writes the artifact itself; this layer never touches the
// output path. Logging is silenced because diagnostics are collected from
// the result and surfaced through our own reporting.
func buildOptions(cfg domain.EffectiveConfig) (api.BuildOptions, error) {
	level, ok := levels[cfg.Level]
	if !ok {
		return api.BuildOptions{}, domain.Tag(domain.ErrUnknownLevel, "level", cfg.Level)
	}
	format, ok := formats[cfg.Format]
	if !ok {
		return api.BuildOptions{}, domain.Tag(domain.ErrUnknownFormat, "format", cfg.Format)
	}

	sourcemap := api.SourceMapNone
	if cfg.Sourcemap {
		sourcemap = api.SourceMapLinked
	}

	return api.BuildOptions{
		EntryPoints:       cfg.EntryPoints,
		Outfile:           cfg.Outfile,
		Bundle:            cfg.Bundle,
		Write:             true,
		MinifyWhitespace:  cfg.Minify,
		MinifyIdentifiers: cfg.Minify,
		MinifySyntax:      cfg.Minify,
		Sourcemap:         sourcemap,
		Target:            level,
		Format:            format,
		External:          cfg.External,
		OutExtensions:     cfg.OutExtensions,
		LogLevel:          api.LogLevelSilent,
	}, nil
}
