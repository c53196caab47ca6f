package genotype

import "math/big"

// factorial computes n! as an exact big.Int, used to size Unique/MultiUnique
// permutation spaces.
func factorial(n int) *big.Int {
	result := big.NewInt(1)
	for i := int64(2); i <= int64(n); i++ {
		result.Mul(result, big.NewInt(i))
	}
	return result
}

func pairCount(n int) int64 {
	nn := int64(n)
	return nn * (nn - 1) / 2
}

// permutationAt decodes index (0 <= index < len(alphabet)!) into the
// index-th permutation of alphabet in lexicographic-of-position order,
// via the factorial number system (Lehmer code).
func permutationAt[T any](alphabet []T, index *big.Int) []T {
	n := len(alphabet)
	pool := cloneSlice(alphabet)
	out := make([]T, n)
	idx := new(big.Int).Set(index)
	for i := 0; i < n; i++ {
		f := factorial(n - 1 - i)
		q, r := new(big.Int), new(big.Int)
		q.DivMod(idx, f, r)
		pos := int(q.Int64())
		out[i] = pool[pos]
		pool = append(pool[:pos], pool[pos+1:]...)
		idx = r
	}
	return out
}
