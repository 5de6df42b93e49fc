package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRoot(viper.New()).Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// newRoot links the commands together and binds their options into cfg.
func newRoot(cfg *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "gasifier",
		Short: "Biomass gasification and gas-engine electricity simulator",
		Long: `gasifier simulates a biomass gasifier feeding an engine-generator. It solves
the atom balance and water-gas shift equilibrium for the producer gas and
reports syngas composition, heating value, electricity and CO2.

Scenarios are YAML or TOML files; a project directory holds gasifier.yaml.
Options may be set by flag, by GASIFIER_<OPTION> environment variables
(dashes become underscores) or from a --config file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig(cfg) },
	}

	serve := serveCmd(cfg)
	sweep := sweepCmd(cfg)
	kp := kpCmd(cfg)
	estimate := estimateCmd(cfg)
	defaults := defaultsCmd(cfg)

	root.AddCommand(simulateCmd(cfg))
	root.AddCommand(validateCmd(cfg))
	root.AddCommand(estimate)
	root.AddCommand(sweep)
	root.AddCommand(kp)
	root.AddCommand(serve)
	root.AddCommand(defaults)

	bindOptions(cfg, options(root, serve, sweep, kp, estimate, defaults))
	return root
}

func simulateCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [scenario-path]",
		Short: "Run one scenario and print the syngas and electricity results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func validateCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-path]",
		Short: "Check a scenario against the input bounds and the solver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func estimateCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Quick electricity estimate from an assumed gasification efficiency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd.OutOrStdout(), cfg)
		},
	}
}

func sweepCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep [scenario-path]",
		Short: "Run a scenario over a list of values of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func kpCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "kp",
		Short: "Print the water-gas shift equilibrium constant at a temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKp(cmd.OutOrStdout(), cfg)
		},
	}
}

func defaultsCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults [new-scenario-file]",
		Short: "Print the default scenario, or write it to a new yaml, toml or json file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefaults(cmd.OutOrStdout(), cfg, args)
		},
	}
}

func serveCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [scenario-path]",
		Short: "Start the HTTP API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServe(cfg, args)
		},
	}
}
