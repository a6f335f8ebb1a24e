package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/phasepack/internal/logger"
	"github.com/katalvlaran/phasepack/problem"
	"github.com/katalvlaran/phasepack/retrieval"
)

// mustBindPFlag attempts to bind a specific key to a pflag (as used by cobra) and panics
// if the binding fails with a non-nil error.
func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

func mustBindEnv(input ...string) {
	if err := viper.BindEnv(input...); err != nil {
		panic("failed to bind env key: " + err.Error())
	}
}

// binding pairs a flag name with its configuration key.
type binding struct {
	flag string
	key  string
}

// bindOnRun returns a PreRunE that binds the given flags of the executing
// command to viper. Binding at run time keeps commands that share a key from
// overwriting each other's flag.
func bindOnRun(bindings ...binding) func(*cobra.Command, []string) error {
	return func(command *cobra.Command, _ []string) error {
		flags := command.Flags()
		for _, b := range bindings {
			mustBindPFlag(b.key, flags.Lookup(b.flag))
			mustBindEnv(b.key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(b.flag, "-", "_")))
		}
		return nil
	}
}

// addProblemFlags declares the test problem flags.
func addProblemFlags(flags *pflag.FlagSet) []binding {
	flags.String("data-type", string(problem.DataGaussian), "measurement model: gaussian or fourier")
	flags.Int("m", 48, "number of measurements")
	flags.Int("n", 6, "signal length")
	flags.Bool("complex", true, "draw a complex signal (and complex gaussian measurements)")
	flags.Bool("non-negative", false, "draw a real non-negative signal")
	flags.Int64("seed", 1, "random seed of the generated problem")

	return []binding{
		{"data-type", dataTypeConf},
		{"m", mConf},
		{"n", nConf},
		{"complex", complexConf},
		{"non-negative", nonNegConf},
		{"seed", seedConf},
	}
}

// addSolverFlags declares the solver flags shared by solve and compare.
func addSolverFlags(flags *pflag.FlagSet) []binding {
	defaults := retrieval.DefaultOptions()

	flags.String("init", string(defaults.InitMethod), "initializer: optimal, spectral or truncated")
	flags.Float64("tol", defaults.Tol, "stopping tolerance")
	flags.Int("max-iters", defaults.MaxIters, "maximum outer iterations")
	flags.Duration("max-time", defaults.MaxTime, "wall-clock budget per solve")
	flags.Int("max-inner-iters", defaults.MaxInnerIters, "maximum LSQR iterations per outer step")
	flags.Int("verbose", 0, "0 silent, 1 start/finish, 2 every iteration")
	flags.Bool("use-truth", true, "stop on reconstruction error against the generated signal")
	flags.String("log-format", logger.FormatText, "the log format to output logs in: text or json")
	flags.String("log-level", "info", "the log level to use")
	flags.StringP("output", "o", "yaml", "report format: yaml or json")

	return []binding{
		{"init", initConf},
		{"tol", tolConf},
		{"max-iters", maxItersConf},
		{"max-time", maxTimeConf},
		{"max-inner-iters", innerConf},
		{"verbose", verboseConf},
		{"use-truth", useTruthConf},
		{"log-format", logFormatConf},
		{"log-level", logLevelConf},
		{"output", outputConf},
	}
}

// problemConfig reads the generated problem from viper.
func problemConfig() (problem.Config, error) {
	dt, err := problem.ParseDataType(viper.GetString(dataTypeConf))
	if err != nil {
		return problem.Config{}, err
	}

	return problem.Config{
		M:                 viper.GetInt(mConf),
		N:                 viper.GetInt(nConf),
		IsComplex:         viper.GetBool(complexConf),
		IsNonNegativeOnly: viper.GetBool(nonNegConf),
		DataType:          dt,
		Seed:              viper.GetInt64(seedConf),
	}, nil
}

// solverOptions reads solver options from viper. The algorithm is left at
// its default; callers set it.
func solverOptions(cfg problem.Config) (retrieval.Options, error) {
	opts := retrieval.DefaultOptions()

	method, err := retrieval.ParseInitMethod(viper.GetString(initConf))
	if err != nil {
		return opts, err
	}
	opts.InitMethod = method
	opts.Tol = viper.GetFloat64(tolConf)
	opts.MaxIters = viper.GetInt(maxItersConf)
	opts.MaxTime = viper.GetDuration(maxTimeConf)
	opts.MaxInnerIters = viper.GetInt(innerConf)
	opts.Verbose = viper.GetInt(verboseConf)
	opts.IsComplex = cfg.IsComplex && !cfg.IsNonNegativeOnly
	opts.IsNonNegativeOnly = cfg.IsNonNegativeOnly
	opts.Seed = cfg.Seed

	return opts, nil
}
