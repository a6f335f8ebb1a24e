// Package cmd contains all the commands included in the phaseret binary.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PHASERET"

// Configuration keys. Nested keys map to sections of phaseret.yaml.
const (
	dataTypeConf  = "problem.data-type"
	mConf         = "problem.m"
	nConf         = "problem.n"
	complexConf   = "problem.complex"
	nonNegConf    = "problem.non-negative"
	seedConf      = "problem.seed"
	algorithmConf = "solver.algorithm"
	algsConf      = "solver.algorithms"
	initConf      = "solver.init"
	tolConf       = "solver.tol"
	maxItersConf  = "solver.max-iters"
	maxTimeConf   = "solver.max-time"
	innerConf     = "solver.max-inner-iters"
	verboseConf   = "solver.verbose"
	useTruthConf  = "solver.use-truth"
	parallelConf  = "solver.parallel"
	logFormatConf = "log.format"
	logLevelConf  = "log.level"
	outputConf    = "output.format"
	metricsConf   = "output.metrics"
)

// NewRootCommand enables all children commands to read flags from CLI flags,
// environment variables prefixed with PHASERET, or phaseret.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("phaseret")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/phaseret", "$HOME/.phaseret", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}
	// the config file is optional
	_ = viper.ReadInConfig()

	return &cobra.Command{
		Use:   "phaseret",
		Short: "Recover signals from magnitude-only linear measurements",
		Long: `Recover signals from magnitude-only linear measurements.

phaseret builds synthetic phase retrieval problems (gaussian or oversampled
Fourier measurements) and solves them with alternating projections, Gauss-Newton,
Wirtinger flow or amplitude flow, reporting convergence diagnostics.`,
		SilenceUsage: true,
	}
}
