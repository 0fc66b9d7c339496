package search

import (
	"context"
	"crypto/md5"
	"strconv"
)

// AdventCoin returns the lowest positive n such that the MD5 digest of
// secret followed by the decimal n starts with zeros hexadecimal zeros.
func AdventCoin(ctx context.Context, secret string, zeros int, workers int) (int64, error) {
	return Unbounded(ctx, 1, 1<<16, workers, func(n int64) (bool, error) {
		buf := strconv.AppendInt([]byte(secret), n, 10)
		return leadingZeros(md5.Sum(buf), zeros), nil
	})
}

// leadingZeros reports whether the first zeros hex digits of sum are 0.
func leadingZeros(sum [md5.Size]byte, zeros int) bool {
	if zeros > 2*md5.Size {
		return false
	}
	for i := 0; i < zeros; i++ {
		b := sum[i/2]
		if i%2 == 0 {
			b >>= 4
		}
		if b&0x0f != 0 {
			return false
		}
	}
	return true
}
