package main

import (
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/retroblast-engine/asemation"
)

// Config is the optional YAML file given with --config.
type Config struct {
	Decode struct {
		StrictMagic     bool `yaml:"strictMagic"`
		BestEffort      bool `yaml:"bestEffort"`
		SkipCorruptCels bool `yaml:"skipCorruptCels"`
		ClampTags       bool `yaml:"clampTags"`
		Concurrency     int  `yaml:"concurrency"`
	} `yaml:"decode"`
	Export struct {
		Dir   string `yaml:"dir"`
		Scale int    `yaml:"scale"`
	} `yaml:"export"`
}

func defaultConfig() Config {
	var c Config
	c.Export.Dir = "."
	c.Export.Scale = 1
	return c
}

// readConfig reads path over the defaults. An empty path returns the defaults.
func readConfig(path string) (Config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.SetStrict(true)
	if err := decoder.Decode(&c); err != nil {
		return c, err
	}
	return c, nil
}

// applyFlags lets command line flags override the file.
func (c *Config) applyFlags(cmd *cli.Command) {
	if cmd.IsSet("strict") {
		c.Decode.StrictMagic = cmd.Bool("strict")
	}
	if cmd.IsSet("best-effort") {
		c.Decode.BestEffort = cmd.Bool("best-effort")
	}
	if cmd.IsSet("skip-corrupt") {
		c.Decode.SkipCorruptCels = cmd.Bool("skip-corrupt")
	}
	if cmd.IsSet("clamp-tags") {
		c.Decode.ClampTags = cmd.Bool("clamp-tags")
	}
	if cmd.IsSet("concurrency") {
		c.Decode.Concurrency = int(cmd.Int("concurrency"))
	}
}

// Options converts the decode section.
func (c Config) Options() asemation.Options {
	opts := asemation.Options{
		StrictMagic:     c.Decode.StrictMagic,
		BestEffort:      c.Decode.BestEffort,
		SkipCorruptCels: c.Decode.SkipCorruptCels,
		Concurrency:     c.Decode.Concurrency,
	}
	if c.Decode.ClampTags {
		opts.TagBounds = asemation.TagsClamp
	}
	return opts
}
