package sample

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSizePercentPrecedence(t *testing.T) {
	size, err := Size(200, 10, 25)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 50 {
		t.Fatalf("got %d, want 50 (percent wins over absolute)", size)
	}

	size, err = Size(200, 10, 0)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 10 {
		t.Fatalf("got %d, want 10", size)
	}
}

func TestSizeRoundsPercent(t *testing.T) {
	// 1.5% of 100 rounds to 2
	size, err := Size(100, 0, 1.5)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 2 {
		t.Fatalf("got %d, want 2", size)
	}
}

func TestDrawExactlyKDistinctInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tc := range []struct{ n, k int }{{1, 1}, {10, 3}, {100, 100}, {5000, 250}} {
		chosen, err := Draw(tc.n, tc.k, 0, rng)
		if err != nil {
			t.Fatalf("Draw(%d, %d): %v", tc.n, tc.k, err)
		}
		if len(chosen) != tc.k {
			t.Fatalf("Draw(%d, %d): got %d positions", tc.n, tc.k, len(chosen))
		}
		for pos := range chosen {
			if pos < 0 || pos >= tc.n {
				t.Fatalf("Draw(%d, %d): position %d out of range", tc.n, tc.k, pos)
			}
		}
	}
}

func TestDrawZeroSample(t *testing.T) {
	if _, err := Draw(10, 0, 0, nil); !errors.Is(err, ErrInvalidSampleSize) {
		t.Fatalf("got %v, want ErrInvalidSampleSize", err)
	}
}

func TestDrawOversample(t *testing.T) {
	if _, err := Draw(10, 11, 0, nil); !errors.Is(err, ErrInvalidSampleSize) {
		t.Fatalf("got %v, want ErrInvalidSampleSize", err)
	}
	// 100% of the population is fine
	if _, err := Draw(10, 0, 100, nil); err != nil {
		t.Fatalf("Draw at 100%%: %v", err)
	}
}

func TestDrawCoversIndexSpace(t *testing.T) {
	// with enough draws of k=1 every position should come up
	rng := rand.New(rand.NewSource(7))
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		chosen, err := Draw(10, 1, 0, rng)
		if err != nil {
			t.Fatalf("Draw: %v", err)
		}
		for pos := range chosen {
			seen[pos] = true
		}
	}
	if len(seen) != 10 {
		t.Fatalf("only %d of 10 positions ever selected", len(seen))
	}
}
