package lens2d

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// SaveRawGrid dumps the grid as little-endian int32 rows, int32 cols, then
// rows*cols float64 values in row-major order.
func SaveRawGrid(g mat.Matrix, path string) error {
	rows, cols := g.Dims()
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("empty grid: %dx%d", rows, cols)
	}
	// DenseCopyOf is contiguous, Stride == cols.
	data := mat.DenseCopyOf(g).RawMatrix().Data

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(rows)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(cols)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// LoadRawGrid reads a file written by SaveRawGrid.
func LoadRawGrid(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var rows, cols int32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return nil, err
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("bad raw grid header: %dx%d", rows, cols)
	}
	data := make([]float64, int(rows)*int(cols))
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return mat.NewDense(int(rows), int(cols), data), nil
}
