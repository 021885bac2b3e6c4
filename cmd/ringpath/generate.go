package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/matrixio"
)

var errBadNodeCount = errors.New("node count must be a positive integer")

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <n>",
		Short: "Write a random n-node graph and its shortest distances",
		Long: `generate writes two files into --out:
  mat_<n>     the adjacency matrix, 0 meaning "no edge"
  result_<n>  the expected all-pairs shortest distances, "i" for unreachable`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runGenerate,
	}
	cmd.Flags().String("out", "data", "Directory to write the files into")
	cmd.Flags().Int64("seed", 0, "Random seed; a time-based seed is used when unset")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("generate %q: %w", args[0], errBadNodeCount)
	}
	dir, _ := cmd.Flags().GetString("out")
	seed, _ := cmd.Flags().GetInt64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}

	g, err := matrixio.Generate(n, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	dist := g.Clone()
	if err = matrix.FloydWarshall(dist); err != nil {
		return err
	}

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err = writeFile(filepath.Join(dir, fmt.Sprintf("mat_%d", n)), g, matrixio.WriteAdjacency); err != nil {
		return err
	}
	if err = writeFile(filepath.Join(dir, fmt.Sprintf("result_%d", n)), dist, matrixio.WriteDistances); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (seed %d)\n", dir, seed)
	return nil
}

func writeFile(path string, m *matrix.Dense, write func(w io.Writer, m *matrix.Dense) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f, m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
