// Package selftest is the built-in sanity suite run by `ringpath test`.
package selftest

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/ringpath/apsp"
	"github.com/katalvlaran/ringpath/matrix"
	"github.com/katalvlaran/ringpath/matrixio"
	"github.com/katalvlaran/ringpath/ring"
	"github.com/katalvlaran/ringpath/topology"
	"github.com/katalvlaran/ringpath/transport/local"
)

const (
	ansiRed   = "\033[0;31m"
	ansiGreen = "\033[0;32m"
	ansiReset = "\033[0m"
)

// Check is one named self-test. It returns nil on success.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Checks returns the suite in execution order.
func Checks() []Check {
	return []Check{
		{"replace", checkReplace},
		{"next_previous", checkNextPrevious},
		{"load_matrix", checkLoadMatrix},
		{"tropical_absorption", checkTropicalAbsorption},
		{"tropical_product", checkTropicalProduct},
		{"scatter_gather", checkScatterGather},
		{"apsp", checkAPSP},
	}
}

// Run executes the suite on rank 0 and writes one line per check plus a
// summary to w. Other ranks do nothing. It returns the number of failures.
func Run(ctx context.Context, w io.Writer, rank int) int {
	if rank != 0 {
		return 0
	}
	color := isTerminal(w)
	failed := 0
	for i, c := range Checks() {
		err := c.Run(ctx)
		status, tint := "pass", ansiGreen
		if err != nil {
			failed++
			status, tint = "failed", ansiRed
		}
		line := fmt.Sprintf("Test %d %s : '%s'", i+1, status, c.Name)
		if color {
			line = tint + line + ansiReset
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d test failed.\n", failed)
	return failed
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func checkReplace(context.Context) error {
	cases := []struct {
		rows, cols, row, col int
		bRows, bCols         int
		want                 []float64
	}{
		{4, 4, 0, 0, 4, 2, []float64{101, 102, 3, 4, 103, 104, 7, 8, 105, 106, 11, 12, 107, 108, 15, 16}},
		{2, 8, 0, 2, 2, 2, []float64{1, 2, 101, 102, 5, 6, 7, 8, 9, 10, 103, 104, 13, 14, 15, 16}},
	}
	for _, tc := range cases {
		a, err := matrix.NewSequence(0, tc.rows, tc.cols, matrix.RowMajor)
		if err != nil {
			return err
		}
		b, err := matrix.NewSequence(100, tc.bRows, tc.bCols, matrix.RowMajor)
		if err != nil {
			return err
		}
		if err = matrix.Place(a, b, tc.row, tc.col); err != nil {
			return err
		}
		if !slices.Equal(a.Data(), tc.want) {
			return fmt.Errorf("place at (%d,%d): got %v", tc.row, tc.col, a.Data())
		}
	}
	return nil
}

func checkNextPrevious(context.Context) error {
	for _, tc := range []struct{ rank, next, prev int }{{0, 1, 3}, {3, 0, 2}} {
		if n, p := topology.Next(tc.rank, 4), topology.Previous(tc.rank, 4); n != tc.next || p != tc.prev {
			return fmt.Errorf("rank %d of 4: next %d previous %d", tc.rank, n, p)
		}
	}
	return nil
}

const loadFixture = `0 1 2 0
0 0 0 1
0 3 0 6
0 0 0 0`

func checkLoadMatrix(context.Context) error {
	m, err := matrixio.Parse(strings.NewReader(loadFixture))
	if err != nil {
		return err
	}
	i := matrix.Sentinel
	want := []float64{0, 1, 2, i, i, 0, i, 1, i, 3, 0, 6, i, i, i, 0}
	if !slices.Equal(m.Data(), want) {
		return fmt.Errorf("load: got %v", m.Data())
	}
	return nil
}

func checkTropicalAbsorption(context.Context) error {
	s := matrix.Sentinel
	if !matrix.IsSentinel(matrix.TropicalCombine(s, 5)) || !matrix.IsSentinel(matrix.TropicalCombine(5, s)) {
		return fmt.Errorf("sentinel does not absorb")
	}
	if matrix.TropicalCombine(2, 3) != 5 || matrix.TropicalReduce(s, 4) != 4 {
		return fmt.Errorf("tropical arithmetic is off")
	}
	return nil
}

func graph4() (*matrix.Dense, error) {
	return matrixio.Parse(strings.NewReader(`0 3 0 7
8 0 2 0
5 0 0 1
2 0 0 0`))
}

func checkTropicalProduct(context.Context) error {
	g, err := graph4()
	if err != nil {
		return err
	}
	got, err := matrix.Product(g, g, matrix.Tropical())
	if err != nil {
		return err
	}
	i := matrix.Sentinel
	want := []float64{0, 3, 5, 7, 7, 0, 2, 3, 3, 8, 0, 1, 2, 5, i, 0}
	if !slices.Equal(got.Data(), want) {
		return fmt.Errorf("two-hop distances: got %v", got.Data())
	}
	return nil
}

func checkScatterGather(ctx context.Context) error {
	const size, n = 4, 8
	want, err := matrix.NewSequence(0, n, n, matrix.RowMajor)
	if err != nil {
		return err
	}
	var got *matrix.Dense
	err = local.Run(ctx, size, func(ctx context.Context, c ring.Comm) error {
		var in *matrix.Dense
		if c.Rank() == 0 {
			in = want.Clone()
		}
		block, err := ring.Scatter(ctx, c, in, n, matrix.RowMajor, 0)
		if err != nil {
			return err
		}
		out, err := ring.Gather(ctx, c, block, 0)
		if c.Rank() == 0 {
			got = out
		}
		return err
	})
	if err != nil {
		return err
	}
	if !matrix.Equal(want, got) {
		return fmt.Errorf("round trip changed the matrix")
	}
	return nil
}

func checkAPSP(ctx context.Context) error {
	g, err := graph4()
	if err != nil {
		return err
	}
	want := g.Clone()
	if err = matrix.FloydWarshall(want); err != nil {
		return err
	}

	var (
		mu  sync.Mutex
		got *matrix.Dense
	)
	err = local.Run(ctx, 2, func(ctx context.Context, c ring.Comm) error {
		var in *matrix.Dense
		if c.Rank() == 0 {
			in = g
		}
		out, err := apsp.Run(ctx, c, in)
		if out != nil {
			mu.Lock()
			got = out
			mu.Unlock()
		}
		return err
	})
	if err != nil {
		return err
	}
	if !matrix.Equal(want, got) {
		return fmt.Errorf("distributed closure differs from Floyd-Warshall")
	}
	return nil
}
