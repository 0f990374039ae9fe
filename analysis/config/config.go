// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the analysis configuration from a yaml file and provides the leveled
// logging used by the analyses.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/sawwas/redex/analysis/ir"
	"github.com/sawwas/redex/internal/funcutil"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config holds the options of the analyses.
// If some field is not defined in the config file, it will be empty/zero in the struct.
type Config struct {
	// LogLevel controls the verbosity of the analyses (see LogLevel constants)
	LogLevel int `yaml:"log-level"`

	// MaxIterations bounds the number of solver passes over the control-flow graph; 0 means
	// no bound. The immutable-subcomponent solver always terminates, so this is a safety
	// valve for debugging, not a correctness requirement.
	MaxIterations int `yaml:"max-iterations"`

	// Getters lists the identifiers of methods to classify as getters of immutable structures
	Getters []GetterIdentifier `yaml:"getters"`
}

// GetterIdentifier identifies a set of getter methods by regexes on class, name and prototype.
// An empty field matches everything.
type GetterIdentifier struct {
	Class string `yaml:"class"`
	Name  string `yaml:"name"`
	Proto string `yaml:"proto"`

	// compiled regexes, not part of the yaml config
	classRegex *regexp.Regexp
	nameRegex  *regexp.Regexp
	protoRegex *regexp.Regexp
}

// compileRegexes compiles the strings in the identifier into regexes. It compiles all of them
// or none.
func (g GetterIdentifier) compileRegexes() (GetterIdentifier, error) {
	classRegex, err := regexp.Compile(g.Class)
	if err != nil {
		return g, fmt.Errorf("invalid class pattern %q: %w", g.Class, err)
	}
	nameRegex, err := regexp.Compile(g.Name)
	if err != nil {
		return g, fmt.Errorf("invalid name pattern %q: %w", g.Name, err)
	}
	protoRegex, err := regexp.Compile(g.Proto)
	if err != nil {
		return g, fmt.Errorf("invalid proto pattern %q: %w", g.Proto, err)
	}
	g.classRegex = classRegex
	g.nameRegex = nameRegex
	g.protoRegex = protoRegex
	return g, nil
}

// matches returns true if each non-empty field of the identifier matches the corresponding
// component of the method reference.
func (g *GetterIdentifier) matches(m *ir.MethodRef) bool {
	return (g.Class == "" || g.classRegex.MatchString(m.Class)) &&
		(g.Name == "" || g.nameRegex.MatchString(m.Name)) &&
		(g.Proto == "" || g.protoRegex.MatchString(m.Proto))
}

// IsGetter returns the getter predicate induced by the config: a method is a getter when some
// identifier in Getters matches it. The returned function is pure and safe for concurrent use.
func (c *Config) IsGetter() func(*ir.MethodRef) bool {
	getters := c.Getters
	return func(m *ir.MethodRef) bool {
		return funcutil.Exists(getters, func(g GetterIdentifier) bool { return g.matches(m) })
	}
}

// Load reads a Config from the yaml file and compiles the getter patterns.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", filename, err)
	}
	cfg := &Config{LogLevel: int(InfoLevel)}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", filename, err)
	}
	for i, g := range cfg.Getters {
		compiled, err := g.compileRegexes()
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", filename, err)
		}
		cfg.Getters[i] = compiled
	}
	return cfg, nil
}
