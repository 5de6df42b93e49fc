package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/energy"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/spec"
)

// option is one configuration variable. It is settable by flag, by a
// GASIFIER_ environment variable, or from the --config file.
type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// options lists the configuration variables of every command.
func options(root, serve, sweep, kp, estimate, defaults *cobra.Command) []option {
	return []option{
		{
			name:       "config",
			usage:      "configuration file (yaml, toml or json) holding any of these options",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "logging level: debug, info, warn or error",
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "format",
			usage:      "output format: text or json",
			shorthand:  "f",
			defaultVal: "text",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "port",
			usage:      "HTTP server port",
			shorthand:  "p",
			defaultVal: 3000,
			flagsets:   []*pflag.FlagSet{serve.Flags()},
		},
		{
			name:       "param",
			usage:      "parameter to sweep: " + parameterList(),
			defaultVal: "temperature",
			flagsets:   []*pflag.FlagSet{sweep.Flags()},
		},
		{
			name:       "values",
			usage:      "comma-separated values for the swept parameter (°C for temperature, fractions otherwise)",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{sweep.Flags()},
		},
		{
			name:       "temperature-c",
			usage:      "reactor temperature [°C]",
			shorthand:  "t",
			defaultVal: 800.0,
			flagsets:   []*pflag.FlagSet{kp.Flags()},
		},
		{
			name:       "correlation",
			usage:      "Kp correlation: fitted or moe",
			defaultVal: "fitted",
			flagsets:   []*pflag.FlagSet{kp.Flags()},
		},
		{
			name:       "flow",
			usage:      "biomass flow [kg/h]",
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "biomass-lhv",
			usage:      "biomass lower heating value [MJ/kg]",
			defaultVal: 18.0,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "gasification-efficiency",
			usage:      "cold gas efficiency [%]",
			defaultVal: 75.0,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "syngas-lhv",
			usage:      "syngas lower heating value [MJ/Nm³]",
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "engine-efficiency",
			usage:      "engine-generator efficiency [%]",
			defaultVal: 30.0,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "hours",
			usage:      "operating hours",
			defaultVal: 8.0,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "co-pct",
			usage:      "CO volume fraction of the syngas [%]; 0 leaves CO out of the CO2 estimate",
			defaultVal: 100 * energy.DefaultCOFraction,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "ch4-pct",
			usage:      "CH4 volume fraction of the syngas [%]; 0 leaves CH4 out of the CO2 estimate",
			defaultVal: 100 * energy.DefaultCH4Fraction,
			flagsets:   []*pflag.FlagSet{estimate.Flags()},
		},
		{
			name:       "encoding",
			usage:      "scenario encoding printed by defaults: yaml, toml or json (--format json implies json)",
			defaultVal: string(spec.FormatYAML),
			flagsets:   []*pflag.FlagSet{defaults.Flags()},
		},
	}
}

// bindOptions creates the flags and binds them into cfg.
func bindOptions(cfg *viper.Viper, opts []option) {
	cfg.SetEnvPrefix("GASIFIER")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	for _, opt := range opts {
		for i, set := range opt.flagsets {
			if i != 0 { // Don't create the same flag twice.
				set.AddFlag(opt.flagsets[0].Lookup(opt.name))
				continue
			}
			switch v := opt.defaultVal.(type) {
			case string:
				set.StringP(opt.name, opt.shorthand, v, opt.usage)
			case []string:
				set.StringSliceP(opt.name, opt.shorthand, v, opt.usage)
			case int:
				set.IntP(opt.name, opt.shorthand, v, opt.usage)
			case float64:
				set.Float64P(opt.name, opt.shorthand, v, opt.usage)
			default:
				panic(fmt.Sprintf("option %s: invalid default type %T", opt.name, v))
			}
			cfg.BindPFlag(opt.name, set.Lookup(opt.name))
		}
	}
}

// setConfig reads the configuration file, if there is one, and configures
// logging.
func setConfig(cfg *viper.Viper) error {
	if path := cfg.GetString("config"); path != "" {
		cfg.SetConfigFile(path)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gasifier: reading configuration file: %w", err)
		}
	}

	level, err := logrus.ParseLevel(cfg.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("gasifier: %w", err)
	}
	log := logrus.StandardLogger()
	log.SetLevel(level)
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	}

	switch f := cfg.GetString("format"); f {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("gasifier: unknown output format %q (want %q or %q)", f, formatText, formatJSON)
	}
	return nil
}
