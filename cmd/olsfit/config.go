package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mylm "github.com/syl051088/MyLM"
	"github.com/syl051088/MyLM/design"
)

// options is shared by every subcommand. Values come from the defaults, then
// the YAML file named by --config, then explicitly set flags.
type options struct {
	Data         string   `yaml:"data"`
	NewData      string   `yaml:"new_data"`
	Response     string   `yaml:"response"`
	Columns      []string `yaml:"columns"`
	NoIntercept  bool     `yaml:"no_intercept"`
	MaxCondition float64  `yaml:"max_condition"`
	Interval     string   `yaml:"interval"`
	Level        float64  `yaml:"level"`
	LogLevel     string   `yaml:"log_level"`
}

func defaultOptions() options {
	return options{
		Response:     "y",
		MaxCondition: mylm.DefaultMaxCondition,
		Interval:     "none",
		Level:        0.95,
		LogLevel:     "info",
	}
}

// loadConfig reads a YAML file over base. Keys absent from the file keep
// their base values.
func loadConfig(path string, base options) (options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return base, nil
}

func bindFlags(cmd *cobra.Command, o *options) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.Data, "data", o.Data, "training CSV file")
	f.StringVar(&o.NewData, "new", o.NewData, "CSV file with rows to predict")
	f.StringVar(&o.Response, "response", o.Response, "response column")
	f.StringSliceVar(&o.Columns, "columns", o.Columns, "predictor columns (default: all but the response)")
	f.BoolVar(&o.NoIntercept, "no-intercept", o.NoIntercept, "fit without an intercept column")
	f.Float64Var(&o.MaxCondition, "max-condition", o.MaxCondition, "largest accepted condition number of XᵗX")
	f.StringVar(&o.Interval, "interval", o.Interval, "interval kind: none, confidence or prediction")
	f.Float64Var(&o.Level, "level", o.Level, "interval level in (0, 1)")
	f.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level")
}

// resolve merges the config file beneath the flags the user set explicitly.
func resolve(cmd *cobra.Command, configPath string, flags options) (options, error) {
	if configPath == "" {
		return flags, nil
	}
	o, err := loadConfig(configPath, defaultOptions())
	if err != nil {
		return o, err
	}
	changed := cmd.Flags().Changed
	if changed("data") {
		o.Data = flags.Data
	}
	if changed("new") {
		o.NewData = flags.NewData
	}
	if changed("response") {
		o.Response = flags.Response
	}
	if changed("columns") {
		o.Columns = flags.Columns
	}
	if changed("no-intercept") {
		o.NoIntercept = flags.NoIntercept
	}
	if changed("max-condition") {
		o.MaxCondition = flags.MaxCondition
	}
	if changed("interval") {
		o.Interval = flags.Interval
	}
	if changed("level") {
		o.Level = flags.Level
	}
	if changed("log-level") {
		o.LogLevel = flags.LogLevel
	}
	return o, nil
}

func (o options) csvOptions(response string) *design.CSVOptions {
	return &design.CSVOptions{
		Response:  response,
		Columns:   o.Columns,
		Intercept: !o.NoIntercept,
		Delimiter: ',',
	}
}
