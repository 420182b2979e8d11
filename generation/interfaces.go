package generation

// RandomSource is the uniform random stream a generation pass draws from.
// *rand.Rand from math/rand satisfies it. Draw order is part of the output
// contract: the same source state always yields the same dungeon.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// rangeInt draws uniformly from [lo, hi). A degenerate range returns lo
// without consuming a draw.
func rangeInt(src RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo)
}
