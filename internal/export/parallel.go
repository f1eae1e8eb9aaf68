package export

import (
	"math"
	"runtime"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// forEachIndex runs fn for every index in [0, n) across at most GOMAXPROCS
// goroutines, one contiguous chunk per goroutine. Calls to fn share no
// state. The first error wins once every started chunk has returned;
// already-running calls are not interrupted.
func forEachIndex(n uint64, fn func(i uint64) error) error {
	if n == 0 {
		return nil
	}

	workers := uint64(runtime.GOMAXPROCS(0))
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := uint64(0); w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

var maxUint64 = decimal.NewFromUint64(math.MaxUint64)

// toUint64 truncates d toward negative infinity and converts it, failing
// when the result does not fit in a uint64.
func toUint64(d decimal.Decimal) (uint64, error) {
	d = d.Floor()
	if d.Sign() < 0 || d.Cmp(maxUint64) > 0 {
		return 0, &ConversionError{Value: d}
	}
	return d.BigInt().Uint64(), nil
}
