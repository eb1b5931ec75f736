// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/herd-cost/internal/metrics"
	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/pkg/constants"
	"github.com/iwvelando/herd-cost/pkg/datetime"
	"github.com/iwvelando/herd-cost/pkg/logging"
	"github.com/spf13/viper"
)

// MaxDelay bounds the simulated latency of commits and exports.
const MaxDelay = 10 * time.Second

// Configuration holds all configuration for herd-cost.
type Configuration struct {
	Inputs  metrics.CostInputs `yaml:"inputs" mapstructure:"inputs"`
	Months  []string           `yaml:"months" mapstructure:"months"`
	Session SessionConfig      `yaml:"session,omitempty" mapstructure:"session"`
	Logging logging.Config     `yaml:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig       `yaml:"output,omitempty" mapstructure:"output"`

	monthsSet bool
}

// SessionConfig controls the simulated latency of the dashboard session.
type SessionConfig struct {
	CommitDelay time.Duration `yaml:"commitDelay,omitempty" mapstructure:"commitDelay"`
	ExportDelay time.Duration `yaml:"exportDelay,omitempty" mapstructure:"exportDelay"`
	ReportDate  string        `yaml:"reportDate,omitempty" mapstructure:"reportDate"` // dd/mm/yyyy, defaults to today
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty" mapstructure:"format"`       // pretty, csv, json
	ExportDir string `yaml:"exportDir,omitempty" mapstructure:"exportDir"` // optional CSV export directory
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Inputs:    metrics.DefaultInputs(),
		Months:    append([]string(nil), constants.DefaultMonths...),
		monthsSet: true,
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with HERDCOST_ override
// file values, e.g. HERDCOST_INPUTS_REVENUE=80000.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register every key so AutomaticEnv can override it.
	defaults := metrics.DefaultInputs()
	v.SetDefault("inputs."+constants.FieldHerdSize, defaults.HerdSize)
	v.SetDefault("inputs."+constants.FieldUnitCost, defaults.UnitCost)
	v.SetDefault("inputs."+constants.FieldRevenue, defaults.Revenue)
	v.SetDefault("inputs."+constants.FieldVariableCost, defaults.VariableCost)
	v.SetDefault("inputs."+constants.FieldFixedCost, defaults.FixedCost)
	v.SetDefault("session.commitDelay", "0s")
	v.SetDefault("session.exportDelay", "0s")
	v.SetDefault("session.reportDate", "")
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.exportDir", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.monthsSet = v.IsSet("months")
	if !configuration.monthsSet {
		configuration.Months = append([]string(nil), constants.DefaultMonths...)
	}
	return &configuration, nil
}

// Selection builds the initial month selection. A missing months key yields
// the default months; an explicit empty list yields an empty selection.
func (c *Configuration) Selection() (selection.Selection, error) {
	if !c.monthsSet && len(c.Months) == 0 {
		return selection.Default(), nil
	}
	return selection.New(c.Months...)
}

// SetMonths replaces the configured months, e.g. from a CLI flag.
func (c *Configuration) SetMonths(months []string) {
	c.Months = months
	c.monthsSet = true
}

// ReportDate resolves the configured report date against now.
func (c *Configuration) ReportDate(now time.Time) (time.Time, error) {
	return datetime.ReportDate(c.Session.ReportDate, now)
}

// Validate returns an error for configuration the session cannot start from.
func (c *Configuration) Validate() error {
	var errs []error
	if err := c.Inputs.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Selection(); err != nil {
		errs = append(errs, err)
	}
	if c.Session.CommitDelay < 0 || c.Session.ExportDelay < 0 {
		errs = append(errs, errors.New("session delays must not be negative"))
	}
	if _, err := c.ReportDate(time.Now()); err != nil {
		errs = append(errs, fmt.Errorf("invalid reportDate %q, expected %s: %w", c.Session.ReportDate, datetime.ReportDateLayout, err))
	}
	return errors.Join(errs...)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	seen := make(map[string]bool)
	for _, month := range c.Months {
		label, err := selection.Canonical(month)
		if err != nil {
			continue
		}
		if seen[label] {
			warnings = append(warnings, fmt.Sprintf("Month '%s' is listed more than once", label))
		}
		seen[label] = true
	}

	if c.monthsSet && len(c.Months) == 0 {
		warnings = append(warnings, "No months selected - the profit trend will be empty")
	}

	if c.Session.CommitDelay > MaxDelay {
		warnings = append(warnings, fmt.Sprintf("Commit delay %s exceeds %s", c.Session.CommitDelay, MaxDelay))
	}
	if c.Session.ExportDelay > MaxDelay {
		warnings = append(warnings, fmt.Sprintf("Export delay %s exceeds %s", c.Session.ExportDelay, MaxDelay))
	}

	if c.Inputs.VariableCost+c.Inputs.FixedCost > c.Inputs.Revenue {
		warnings = append(warnings, fmt.Sprintf("Total cost %.2f exceeds revenue %.2f - profit is negative",
			c.Inputs.VariableCost+c.Inputs.FixedCost, c.Inputs.Revenue))
	}

	return warnings
}
