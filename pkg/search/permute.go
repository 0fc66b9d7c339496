package search

// Permutations returns every ordering of values in lexicographic order of
// their positions. The input is not modified.
func Permutations(values []int64) [][]int64 {
	var out [][]int64
	perm := make([]int64, 0, len(values))
	used := make([]bool, len(values))

	var walk func()
	walk = func() {
		if len(perm) == len(values) {
			out = append(out, append([]int64(nil), perm...))
			return
		}
		for i, v := range values {
			if used[i] {
				continue
			}
			used[i] = true
			perm = append(perm, v)
			walk()
			perm = perm[:len(perm)-1]
			used[i] = false
		}
	}
	walk()
	return out
}
