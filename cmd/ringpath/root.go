package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/ringpath/apsp"
	"github.com/katalvlaran/ringpath/config"
	"github.com/katalvlaran/ringpath/logging"
	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/matrixio"
	"github.com/katalvlaran/ringpath/ring"
	"github.com/katalvlaran/ringpath/selftest"
	"github.com/katalvlaran/ringpath/transport/grpcnet"
	"github.com/katalvlaran/ringpath/transport/local"
)

const selfTestArg = "test"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ringpath <matrix-file|test>",
		Short: "All-pairs shortest paths on a ring of workers",
		Long: `ringpath computes all-pairs shortest distances of a weighted directed graph
by repeated min-plus products distributed over a ring of ranks.

The input file holds N*N whitespace-separated integers in row-major order;
0 off the diagonal means "no edge". Unreachable pairs print as "i".
Pass "test" instead of a file to run the built-in self-tests.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
	config.Flags(cmd.PersistentFlags())
	cmd.AddCommand(newGenerateCommand())
	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	ctx, err := logging.Init(cmd.Context(),
		logging.WithLogLevel(cfg.LogLevel),
		logging.WithLogFormat(cfg.LogFormat),
		logging.WithOutputPaths(cfg.LogOutput),
	)
	if err != nil {
		return err
	}
	l := ctxzap.Extract(ctx).With(zap.String("run_id", ksuid.New().String()))
	ctx = ctxzap.ToContext(ctx, l)

	// Only the first rank speaks for the whole ring about usage.
	if len(args) != 1 {
		if !cfg.Distributed() || cfg.Rank == 0 {
			return cmd.Usage()
		}
		return nil
	}

	h, shutdown, err := setupMetrics(ctx, cfg.Metrics, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			l.Warn("metrics shutdown failed", zap.Error(err))
		}
	}()

	if args[0] == selfTestArg {
		rank := 0
		if cfg.Distributed() {
			rank = cfg.Rank
		}
		if failed := selftest.Run(ctx, cmd.OutOrStdout(), rank); failed > 0 {
			l.Warn("self-tests failed", zap.Int("failed", failed))
		}
		return nil
	}

	sr, err := matrix.SemiringByName(cfg.Semiring)
	if err != nil {
		return err
	}
	job := &job{
		path:        args[0],
		transmitter: cfg.Transmitter,
		out:         cmd.OutOrStdout(),
		opts: []apsp.Option{
			apsp.WithSemiring(sr),
			apsp.WithTransmitter(cfg.Transmitter),
			apsp.WithMetrics(h),
		},
	}

	if !cfg.Distributed() {
		l.Info("starting local ring", zap.Int("procs", cfg.Procs))
		return local.Run(ctx, cfg.Procs, job.run, local.WithMetrics(h))
	}

	node, err := grpcnet.New(ctx, cfg.Rank, cfg.Peers,
		grpcnet.WithListen(cfg.Listen),
		grpcnet.WithCompression(cfg.Compress),
		grpcnet.WithLogger(l),
		grpcnet.WithMetrics(h),
	)
	if err != nil {
		return err
	}
	runErr := job.run(logging.WithRank(ctx, cfg.Rank), node)
	if err := node.Close(); err != nil {
		l.Warn("closing node", zap.Error(err))
	}
	return runErr
}

// job is what every rank runs for a matrix file.
type job struct {
	path        string
	transmitter int
	out         io.Writer
	opts        []apsp.Option
}

func (j *job) run(ctx context.Context, c ring.Comm) error {
	l := ctxzap.Extract(ctx)

	var (
		full *matrix.Dense
		n    int
	)
	if c.Rank() == j.transmitter {
		m, err := matrixio.Load(j.path)
		if err != nil {
			// Peers learn about this through N=0 and stop cleanly.
			l.Error("cannot read input matrix", zap.String("path", j.path), zap.Error(err))
		} else if full, err = matrixio.Pad(m, c.Size()); err != nil {
			l.Error("cannot pad input matrix", zap.Error(err))
			full = nil
		} else {
			n = m.Rows()
		}
	}

	res, err := apsp.Run(ctx, c, full, j.opts...)
	if errors.Is(err, apsp.ErrNoInput) {
		return nil
	}
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	// Strip finds the boundary from the diagonal, which only holds under the
	// tropical semiring. The transmitter knows n, so crop to it directly.
	stripped, err := matrixio.Crop(res, n)
	if err != nil {
		return fmt.Errorf("strip padding: %w", err)
	}
	return matrixio.Write(j.out, stripped)
}
