package renderer

import "fmt"

// Band is a contiguous range of image rows [Start, End) owned by one worker
type Band struct {
	ID    int
	Start int
	End   int
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.End - b.Start
}

// NewBandGrid splits height rows into workers equal bands covering the whole
// image in order. workers must evenly divide height.
func NewBandGrid(height, workers int) ([]Band, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d must be positive", ErrInvalidConfig, height)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: need at least one worker, got %d", ErrInvalidConfig, workers)
	}
	if height%workers != 0 {
		return nil, fmt.Errorf("%w: %d workers do not evenly divide height %d", ErrInvalidConfig, workers, height)
	}

	rowsPerBand := height / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{
			ID:    i,
			Start: i * rowsPerBand,
			End:   (i + 1) * rowsPerBand,
		}
	}
	return bands, nil
}
