package matrixio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/ringpath/matrix"
)

// Write prints m for humans: every cell right-aligned in five columns
// followed by a space, the sentinel shown as "i".
func Write(w io.Writer, m *matrix.Dense) error {
	return writeCells(w, m, func(bw *bufio.Writer, i, j int, v float64) {
		fmt.Fprintf(bw, "%5s ", distanceToken(v))
	})
}

// WriteDistances writes m in the result-file format: space-separated values
// with "i" for unreachable. Parse reads it back.
func WriteDistances(w io.Writer, m *matrix.Dense) error {
	return writeCells(w, m, func(bw *bufio.Writer, i, j int, v float64) {
		bw.WriteString(distanceToken(v))
		bw.WriteByte(' ')
	})
}

// WriteAdjacency writes m in the input-file format, where 0 off the diagonal
// means "no edge".
func WriteAdjacency(w io.Writer, m *matrix.Dense) error {
	return writeCells(w, m, func(bw *bufio.Writer, i, j int, v float64) {
		if matrix.IsSentinel(v) {
			v = 0
		}
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		bw.WriteByte(' ')
	})
}

func distanceToken(v float64) string {
	if matrix.IsSentinel(v) {
		return InfToken
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeCells(w io.Writer, m *matrix.Dense, cell func(bw *bufio.Writer, i, j int, v float64)) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	var v float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			cell(bw, i, j, v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
