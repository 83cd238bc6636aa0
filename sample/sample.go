package sample

// uniform random sampling of record positions from a counted
// population, without replacement

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrInvalidSampleSize means the requested sample is empty or larger
// than the population. Both are terminal for the run; the caller
// decides what to tell the user.
var ErrInvalidSampleSize = errors.New("invalid sample size")

// Size resolves the effective sample size from the two request
// styles. A nonzero percent takes precedence over the absolute count.
func Size(total int, absolute int, percent float64) (int, error) {
	size := absolute
	if percent > 0 {
		size = int(math.Round(percent * float64(total) / 100))
	}
	if size > total {
		return 0, fmt.Errorf("%w: sample size %d is greater than the population size %d; "+
			"select a smaller number or use the percentage parameter", ErrInvalidSampleSize, size, total)
	}
	if size == 0 {
		return 0, fmt.Errorf("%w: sample of size 0; adjust the percent or absolute parameter",
			ErrInvalidSampleSize)
	}
	return size, nil
}

// Draw selects the effective number of distinct record positions
// uniformly at random from [0, total). Every subset of that size is
// equally likely. Positions are record indices; scaling to file-line
// offsets is the loader's concern.
func Draw(total int, absolute int, percent float64, rng *rand.Rand) (map[int]bool, error) {
	size, err := Size(total, absolute, percent)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Floyd's sampling; draws exactly size positions in O(size)
	chosen := make(map[int]bool, size)
	for j := total - size; j < total; j++ {
		t := rng.Intn(j + 1)
		if chosen[t] {
			chosen[j] = true
		} else {
			chosen[t] = true
		}
	}
	return chosen, nil
}
