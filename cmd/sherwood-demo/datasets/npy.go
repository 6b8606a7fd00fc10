// Package datasets provides the demo CLI's data loaders: .npy-backed
// loaders for real feature matrices (grounded on the teacher's
// ebl.ReadEMatrix/ebl.ReadNpy) and synthetic generators for each task so
// the demo runs without any external file. None of this package is
// imported by sherwood or rng.
package datasets

import (
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// loadNpy reads a 2-D float matrix from an .npy file, the same call
// shape as ebl.ReadNpy, but returning an error instead of log.Fatal so
// the CLI can report a clean failure.
func loadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, err
	}

	dense := &mat.Dense{}
	if err := r.Read(dense); err != nil {
		return nil, err
	}
	return dense, nil
}
