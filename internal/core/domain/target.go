package domain

// Target is one named, independently buildable unit. Targets are declared
// once at startup and never mutated by running builds.
//
// Pointer-typed fields distinguish "not declared" from an explicit value so
// the merge can tell inherited defaults apart from per-target settings.
type Target struct {
	// Name uniquely identifies the target. Case-sensitive.
	Name string
	// EntryPoints are the root modules handed to the bundling engine.
	// Must be non-empty.
	EntryPoints []string
	// Outfile is the artifact destination path.
	Outfile string
	// OutExtensions remaps output file extensions, e.g. ".js" -> ".mjs".
	OutExtensions map[string]string
	// External lists modules the engine must reference rather than embed.
	// When non-nil it replaces the shared default set outright.
	External []string

	// Per-target overrides of the shared defaults. Nil or empty means
	// "inherit".
	Bundle    *bool
	Minify    *bool
	Sourcemap *bool
	Level     string
	Format    string
}

// Overrides are caller-supplied settings applied on top of a target during
// a single invocation. They take precedence over both the target and the
// shared defaults.
type Overrides struct {
	Minify    *bool
	Sourcemap *bool
	Level     string
	Format    string
	External  []string
}

// EffectiveConfig is the fully merged configuration handed to the bundling
// engine for one build. It is ephemeral and owned by that invocation.
type EffectiveConfig struct {
	Name          string
	EntryPoints   []string
	Outfile       string
	OutExtensions map[string]string
	External      []string
	Bundle        bool
	Minify        bool
	Sourcemap     bool
	Level         string
	Format        string
}
