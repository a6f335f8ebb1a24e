package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/phasepack/internal/logger"
	"github.com/katalvlaran/phasepack/problem"
	"github.com/katalvlaran/phasepack/retrieval"
)

// NewCompareCommand returns the command that solves one generated problem
// with several algorithms concurrently.
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Solve one test problem with several algorithms",
		Long: `Generate a synthetic phase retrieval problem and solve it concurrently with
each listed algorithm. Solves share the operator and measurements but nothing
else. A failed solve is reported, not fatal.

With --metrics-out the solve counters and histograms are written in the
Prometheus text exposition format.`,
		RunE: runCompare,
		Args: cobra.NoArgs,
	}

	flags := cmd.Flags()
	bindings := addProblemFlags(flags)
	bindings = append(bindings, addSolverFlags(flags)...)
	flags.StringSlice("algorithms", algorithmNames(), "algorithms to compare")
	flags.Int("parallel", 0, "maximum concurrent solves (0 for one per algorithm)")
	flags.String("metrics-out", "", "write Prometheus text metrics to this file")
	bindings = append(bindings,
		binding{"algorithms", algsConf},
		binding{"parallel", parallelConf},
		binding{"metrics-out", metricsConf},
	)
	cmd.PreRunE = bindOnRun(bindings...)

	return cmd
}

func algorithmNames() []string {
	algs := retrieval.Algorithms()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = string(a)
	}
	return names
}

func runCompare(cmd *cobra.Command, _ []string) error {
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
	base, err := solverOptions(cfg)
	if err != nil {
		return err
	}
	names := viper.GetStringSlice(algsConf)
	algs := make([]retrieval.Algorithm, len(names))
	for i, name := range names {
		if algs[i], err = retrieval.ParseAlgorithm(name); err != nil {
			return err
		}
	}

	a, xt, b0, err := problem.BuildTestProblem(cfg)
	if err != nil {
		return err
	}
	if viper.GetBool(useTruthConf) {
		base.Xt = xt
	}

	reg := prometheus.NewRegistry()
	metrics := retrieval.NewMetrics(reg)

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	// Validate every solve before starting any.
	retrievers := make([]*retrieval.Retriever, len(algs))
	for i, alg := range algs {
		opts := base.Clone()
		opts.Algorithm = alg
		retrievers[i], err = retrieval.New(a, b0, opts,
			retrieval.WithLogger(log.With(zap.String("algorithm", string(alg)))),
			retrieval.WithMetrics(metrics),
		)
		if err != nil {
			return fmt.Errorf("%s: %w", alg, err)
		}
	}

	reports := make([]report, len(algs))
	ctx := cmd.Context()
	g := new(errgroup.Group)
	if limit := viper.GetInt(parallelConf); limit > 0 {
		g.SetLimit(limit)
	}
	for i, r := range retrievers {
		g.Go(func() error {
			start := time.Now()
			x, outs, resolved, err := r.SolvePhaseRetrieval(ctx)
			reports[i] = newReport(a, b0, xt, x, outs, resolved, time.Since(start), err)
			reports[i].RunID = runID
			return nil
		})
	}
	_ = g.Wait()

	if path := viper.GetString(metricsConf); path != "" {
		if err := writeMetrics(reg, path); err != nil {
			return err
		}
	}

	return writeReport(cmd.OutOrStdout(), format, reports)
}

// writeMetrics gathers reg and writes it to path in the text exposition format.
func writeMetrics(reg prometheus.Gatherer, path string) (err error) {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return writeFamilies(f, families)
}

func writeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
