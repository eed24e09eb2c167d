package config

// Balefile represents the structure of the bale.yaml configuration file.
type Balefile struct {
	Version  string       `yaml:"version"`
	Defaults *DefaultsDTO `yaml:"defaults"`
	Targets  []*TargetDTO `yaml:"targets"`
}

// DefaultsDTO overrides individual shared defaults from the file. Fields
// left out inherit the build-mode defaults.
type DefaultsDTO struct {
	Bundle    *bool    `yaml:"bundle"`
	Minify    *bool    `yaml:"minify"`
	Sourcemap *bool    `yaml:"sourcemap"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	External  []string `yaml:"external"`
}

// TargetDTO represents one target declaration. Targets are a sequence, not
// a map: file order is registration order.
type TargetDTO struct {
	Name          string            `yaml:"name"`
	Entry         []string          `yaml:"entry"`
	Outfile       string            `yaml:"outfile"`
	OutExtensions map[string]string `yaml:"outExtensions"`
	External      []string          `yaml:"external"`
	Bundle        *bool             `yaml:"bundle"`
	Minify        *bool             `yaml:"minify"`
	Sourcemap     *bool             `yaml:"sourcemap"`
	Level         string            `yaml:"level"`
	Format        string            `yaml:"format"`
}
