package search

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestLowest(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  int64
		workers int
		pred    Predicate
		want    int64
		wantErr error
	}{
		{"single worker", 0, 100, 1, func(n int64) (bool, error) { return n*n > 50, nil }, 8, nil},
		{"many workers", 0, 100, 7, func(n int64) (bool, error) { return n*n > 50, nil }, 8, nil},
		{"more workers than values", 3, 5, 16, func(n int64) (bool, error) { return n == 4, nil }, 4, nil},
		{"match in last chunk", 0, 1000, 4, func(n int64) (bool, error) { return n == 999, nil }, 999, nil},
		{"several matches", 0, 1000, 4, func(n int64) (bool, error) { return n%300 == 299, nil }, 299, nil},
		{"default workers", 10, 20, 0, func(n int64) (bool, error) { return n >= 17, nil }, 17, nil},
		{"none", 0, 100, 4, func(n int64) (bool, error) { return false, nil }, 0, ErrNotFound},
		{"empty range", 5, 5, 4, func(n int64) (bool, error) { return true, nil }, 0, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lowest(context.Background(), tt.lo, tt.hi, tt.workers, tt.pred)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lowest failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Lowest = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLowestPredicateError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Lowest(context.Background(), 0, 1000, 4, func(n int64) (bool, error) {
		if n == 600 {
			return false, boom
		}
		return false, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestLowestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Lowest(ctx, 0, 1<<20, 2, func(n int64) (bool, error) { return false, nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestUnbounded(t *testing.T) {
	got, err := Unbounded(context.Background(), 1, 4, 3, func(n int64) (bool, error) { return n >= 1000, nil })
	if err != nil {
		t.Fatalf("Unbounded failed: %v", err)
	}
	if got != 1000 {
		t.Errorf("Unbounded = %d, want 1000", got)
	}
}

func TestAdventCoin(t *testing.T) {
	if testing.Short() {
		t.Skip("hashes about a million candidates")
	}
	tests := []struct {
		secret string
		want   int64
	}{
		{"abcdef", 609043},
		{"pqrstuv", 1048970},
	}
	for _, tt := range tests {
		got, err := AdventCoin(context.Background(), tt.secret, 5, 0)
		if err != nil {
			t.Fatalf("AdventCoin(%q) failed: %v", tt.secret, err)
		}
		if got != tt.want {
			t.Errorf("AdventCoin(%q) = %d, want %d", tt.secret, got, tt.want)
		}
	}
}

func TestLeadingZeros(t *testing.T) {
	sum := [16]byte{0x00, 0x00, 0x0f}
	tests := []struct {
		zeros int
		want  bool
	}{
		{0, true}, {4, true}, {5, true}, {6, false}, {40, false},
	}
	for _, tt := range tests {
		if got := leadingZeros(sum, tt.zeros); got != tt.want {
			t.Errorf("leadingZeros(%d) = %v, want %v", tt.zeros, got, tt.want)
		}
	}
}

func TestPermutations(t *testing.T) {
	in := []int64{0, 1, 2}
	got := Permutations(in)
	want := [][]int64{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %d permutations, want %d", len(got), len(want))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("permutation %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !slices.Equal(in, []int64{0, 1, 2}) {
		t.Errorf("input modified: %v", in)
	}
	if n := len(Permutations([]int64{5, 6, 7, 8, 9})); n != 120 {
		t.Errorf("5 values gave %d permutations, want 120", n)
	}
}
