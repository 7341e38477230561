/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the server settings and the dataset declarations from
// a YAML file, with TABULA_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/google/tabula/core/tables"
)

const (
	configName = "tabula"
	configType = "yaml"
	envPrefix  = "TABULA"

	DefaultAddr  = "127.0.0.1:8097"
	DefaultTitle = "Tabula"
)

// Sources a dataset can be loaded from.
var Sources = []string{"csv", "json", "xlsx", "sqlite"}

var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Defaults DefaultsConfig  `mapstructure:"defaults"`
	Datasets []DatasetConfig `mapstructure:"datasets"`
}

// ServerConfig holds the HTTP settings.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	Title    string `mapstructure:"title"`
	Subtitle string `mapstructure:"subtitle"`
}

// DefaultsConfig applies to every dataset that does not override it.
type DefaultsConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// DatasetConfig declares one dataset. Unset booleans take the table
// defaults.
type DatasetConfig struct {
	Name        string         `mapstructure:"name"`
	Title       string         `mapstructure:"title"`
	Description string         `mapstructure:"description"`
	Categories  []string       `mapstructure:"categories"`
	Source      string         `mapstructure:"source"`
	Path        string         `mapstructure:"path"`
	Query       string         `mapstructure:"query"`
	Sheet       string         `mapstructure:"sheet"`
	PageSize    int            `mapstructure:"page_size"`
	Searchable  *bool          `mapstructure:"searchable"`
	Pagination  *bool          `mapstructure:"pagination"`
	Exportable  *bool          `mapstructure:"exportable"`
	Actions     *bool          `mapstructure:"actions"`
	Columns     []ColumnConfig `mapstructure:"columns"`
}

// ColumnConfig declares a displayed column. Format names a formatter, see
// columns.Named.
type ColumnConfig struct {
	Key      string `mapstructure:"key"`
	Header   string `mapstructure:"header"`
	Sortable *bool  `mapstructure:"sortable"`
	Format   string `mapstructure:"format"`
}

// Load reads configuration from path and env. An empty path looks for
// tabula.yaml in the working directory, and a missing file there is not an
// error. Env var overrides use prefix TABULA_.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.title", DefaultTitle)
	v.SetDefault("server.subtitle", "")
	v.SetDefault("defaults.page_size", tables.DefaultPageSize)

	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every problem with the dataset declarations.
func (c Config) Validate() error {
	var errs []error
	if c.Defaults.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: defaults.page_size must be positive, got %d", ErrInvalidConfig, c.Defaults.PageSize))
	}
	seen := make(map[string]bool)
	for i, d := range c.Datasets {
		where := fmt.Sprintf("datasets[%d]", i)
		if d.Name != "" {
			where = fmt.Sprintf("dataset %q", d.Name)
		}
		switch {
		case d.Name == "":
			errs = append(errs, fmt.Errorf("%w: %s: name is required", ErrInvalidConfig, where))
		case seen[d.Name]:
			errs = append(errs, fmt.Errorf("%w: %s: declared twice", ErrInvalidConfig, where))
		case strings.HasPrefix(d.Name, "_"):
			errs = append(errs, fmt.Errorf("%w: %s: names starting with _ are reserved", ErrInvalidConfig, where))
		}
		seen[d.Name] = true

		if !slices.Contains(Sources, d.Source) {
			errs = append(errs, fmt.Errorf("%w: %s: source must be one of %s, got %q", ErrInvalidConfig, where, strings.Join(Sources, ", "), d.Source))
		}
		if d.Path == "" {
			errs = append(errs, fmt.Errorf("%w: %s: path is required", ErrInvalidConfig, where))
		}
		if d.Source == "sqlite" && d.Query == "" {
			errs = append(errs, fmt.Errorf("%w: %s: sqlite datasets need a query", ErrInvalidConfig, where))
		}
		if d.PageSize < 0 {
			errs = append(errs, fmt.Errorf("%w: %s: page_size must not be negative", ErrInvalidConfig, where))
		}
		for j, col := range d.Columns {
			if col.Key == "" {
				errs = append(errs, fmt.Errorf("%w: %s: columns[%d]: key is required", ErrInvalidConfig, where, j))
			}
		}
	}
	return errors.Join(errs...)
}

// TableConfig returns the table settings of d, falling back to the table
// defaults and the configured default page size.
func (d DatasetConfig) TableConfig(defaults DefaultsConfig) tables.Config {
	cfg := tables.DefaultConfig()
	if defaults.PageSize > 0 {
		cfg.PageSize = defaults.PageSize
	}
	if d.PageSize > 0 {
		cfg.PageSize = d.PageSize
	}
	set(&cfg.Searchable, d.Searchable)
	set(&cfg.Pagination, d.Pagination)
	set(&cfg.Exportable, d.Exportable)
	set(&cfg.Actions, d.Actions)
	return cfg
}

// IsSortable reports whether the column may be sorted; columns are sortable
// unless declared otherwise.
func (c ColumnConfig) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

func set(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
