// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/ejr"
	"github.com/katalvlaran/lvpb/experiment"
	"github.com/katalvlaran/lvpb/pabulib"
	"github.com/katalvlaran/lvpb/rules"
)

// Config is the CLI configuration. A YAML file provides the base values
// and explicitly set flags override them.
type Config struct {
	Rule         string   `yaml:"rule" validate:"required,oneof=greedy mes exchange"`
	Resources    int      `yaml:"resources" validate:"gte=1,lte=64"`
	Seed         uint64   `yaml:"seed"`
	Aggregator   string   `yaml:"aggregator" validate:"oneof=max min sum mean"`
	Epsilon      string   `yaml:"epsilon" validate:"oneof=rel abs count"`
	Completion   bool     `yaml:"completion"`
	UpToOne      bool     `yaml:"up_to_one"`
	Workers      int      `yaml:"workers" validate:"gte=0"`
	Rules        []string `yaml:"rules" validate:"min=1,dive,oneof=greedy mes exchange"`
	Measures     []string `yaml:"measures" validate:"min=1,dive,oneof=runtime exclusion ejr-converted ejr-restricted"`
	Mode         string   `yaml:"mode" validate:"oneof=buckets resources aggregators"`
	MaxResources int      `yaml:"max_resources" validate:"gte=1,lte=64"`
	Format       string   `yaml:"format" validate:"oneof=table tsv"`
}

var configValidator = validator.New()

func defaultConfig() Config {
	return Config{
		Rule:         "mes",
		Resources:    2,
		Seed:         1,
		Aggregator:   "max",
		Epsilon:      "rel",
		Completion:   true,
		UpToOne:      true,
		Rules:        rules.Names(),
		Measures:     []string{"runtime", "exclusion", "ejr-converted", "ejr-restricted"},
		Mode:         modeBuckets,
		MaxResources: 3,
		Format:       formatTable,
	}
}

// loadConfig overlays the YAML file at path onto the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func (c Config) parseOptions() []pabulib.Option {
	return []pabulib.Option{pabulib.WithResources(c.Resources), pabulib.WithSeed(c.Seed)}
}

func (c Config) ruleOptions() []rules.Option {
	agg, _ := afford.ParseAggregator(c.Aggregator)

	return []rules.Option{
		rules.WithAggregator(agg),
		rules.WithEpsilonMode(afford.ParseEpsilonMode(c.Epsilon)),
		rules.WithCompletion(c.Completion),
	}
}

func (c Config) checkOptions() []ejr.Option {
	return []ejr.Option{ejr.WithUpToOne(c.UpToOne)}
}

func (c Config) measures() ([]experiment.Measure, error) {
	out := make([]experiment.Measure, 0, len(c.Measures))
	for _, name := range c.Measures {
		m, err := experiment.ParseMeasure(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}
