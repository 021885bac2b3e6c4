// Package matrixio moves distance matrices between files, terminals and the
// engine: parsing, padding to a ring-divisible size, display and generation
// of test data.
package matrixio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/katalvlaran/ringpath/matrix"
)

// InfToken is the textual form of the sentinel in matrix files.
const InfToken = "i"

// Parse reads whitespace-separated integers in row-major order. The matrix
// side N is the integer square root of the value count; surplus values are
// ignored. An off-diagonal 0 means "no edge" and becomes the sentinel. The
// token "i" is the sentinel itself and the only non-integer token accepted;
// fractions, "NaN" and spelled-out infinities fail with ErrUnparsable.
func Parse(r io.Reader) (*matrix.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var values []float64
	for sc.Scan() {
		tok := sc.Text()
		if tok == InfToken {
			values = append(values, matrix.Sentinel)
			continue
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("Parse: token %d %q: %w", len(values), tok, ErrUnparsable)
		}
		values = append(values, float64(v))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("Parse: %w: %w", ErrUnreadable, err)
	}

	n := int(math.Sqrt(float64(len(values))))
	for (n+1)*(n+1) <= len(values) {
		n++
	}
	for n*n > len(values) {
		n--
	}
	if n == 0 {
		return nil, fmt.Errorf("Parse: %w", ErrEmpty)
	}

	data := values[: n*n : n*n]
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && data[i*n+j] == 0 {
				data[i*n+j] = matrix.Sentinel
			}
		}
	}

	return matrix.NewDenseFrom(data, n, n, matrix.RowMajor)
}

// Load parses the matrix file at path.
func Load(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load(%q): %w: %w", path, ErrUnreadable, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("Load(%q): %w", path, err)
	}
	return m, nil
}
