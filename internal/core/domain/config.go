// Package domain holds the core build model: targets, shared defaults,
// the target registry and the option merge rules.
package domain

import "slices"

// Mode selects the shared default profile for a process.
type Mode string

const (
	// ModeDevelopment keeps output readable: no minification, debug maps on.
	ModeDevelopment Mode = "development"
	// ModeProduction ships compact output: minified, no debug maps.
	ModeProduction Mode = "production"
)

// ModeFromEnv resolves the build mode from an environment value.
// Only the exact value "production" selects production; everything
// else (including empty) is development.
func ModeFromEnv(value string) Mode {
	if value == string(ModeProduction) {
		return ModeProduction
	}
	return ModeDevelopment
}

// Format names for the output module format.
const (
	FormatESM  = "esm"
	FormatCJS  = "cjs"
	FormatIIFE = "iife"
)

// Levels lists the supported language levels, lowest first.
var Levels = []string{
	"es2015", "es2016", "es2017", "es2018", "es2019",
	"es2020", "es2021", "es2022", "esnext",
}

// ValidFormat reports whether name is a supported output format.
func ValidFormat(name string) bool {
	return name == FormatESM || name == FormatCJS || name == FormatIIFE
}

// ValidLevel reports whether name is a supported language level.
func ValidLevel(name string) bool {
	return slices.Contains(Levels, name)
}

// Defaults is the process-wide base configuration every target starts from.
// It is derived once at startup and read-only afterwards.
type Defaults struct {
	// Bundle combines each target into a single artifact.
	Bundle bool
	// Minify strips whitespace, shortens identifiers and folds syntax.
	Minify bool
	// Sourcemap emits a linked debug map next to the artifact.
	Sourcemap bool
	// Level is the language level artifacts are lowered to.
	Level string
	// Format is the output module format.
	Format string
	// External lists modules that are referenced, never embedded.
	External []string
}

// NewDefaults returns the shared defaults for the given mode.
func NewDefaults(mode Mode) Defaults {
	prod := mode == ModeProduction
	return Defaults{
		Bundle:    true,
		Minify:    prod,
		Sourcemap: !prod,
		Level:     "es2020",
		Format:    FormatESM,
	}
}
