package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/phasepack/internal/logger"
	"github.com/katalvlaran/phasepack/problem"
	"github.com/katalvlaran/phasepack/retrieval"
)

// NewSolveCommand returns the command that generates a test problem and
// solves it with one algorithm.
func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Generate a test problem and solve it",
		Long: `Generate a synthetic phase retrieval problem and solve it with one algorithm.

The report (yaml or json) carries the terminal state, iteration count, final
residual, reconstruction and measurement errors, and the resolved options.`,
		RunE: runSolve,
		Args: cobra.NoArgs,
	}

	flags := cmd.Flags()
	bindings := addProblemFlags(flags)
	bindings = append(bindings, addSolverFlags(flags)...)
	flags.String("algorithm", string(retrieval.DefaultAlgorithm), fmt.Sprintf("algorithm, one of %v", retrieval.Algorithms()))
	bindings = append(bindings, binding{"algorithm", algorithmConf})
	cmd.PreRunE = bindOnRun(bindings...)

	return cmd
}

func runSolve(cmd *cobra.Command, _ []string) error {
	format := viper.GetString(outputConf)
	if err := checkFormat(format); err != nil {
		return err
	}

	log, err := logger.NewLogger(viper.GetString(logFormatConf), viper.GetString(logLevelConf))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := problemConfig()
	if err != nil {
		return err
	}
	opts, err := solverOptions(cfg)
	if err != nil {
		return err
	}
	if opts.Algorithm, err = retrieval.ParseAlgorithm(viper.GetString(algorithmConf)); err != nil {
		return err
	}

	a, xt, b0, err := problem.BuildTestProblem(cfg)
	if err != nil {
		return err
	}
	if viper.GetBool(useTruthConf) {
		opts.Xt = xt
	}

	runID := uuid.NewString()
	r, err := retrieval.New(a, b0, opts, retrieval.WithLogger(log.With(zap.String("run_id", runID))))
	if err != nil {
		return err
	}

	start := time.Now()
	x, outs, resolved, solveErr := r.SolvePhaseRetrieval(cmd.Context())
	rep := newReport(a, b0, xt, x, outs, resolved, time.Since(start), solveErr)
	rep.RunID = runID
	if err := writeReport(cmd.OutOrStdout(), format, rep); err != nil {
		return err
	}

	return solveErr
}
