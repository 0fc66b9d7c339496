package regmachine

// IsClockSignal runs m until it has produced n output values and reports
// whether they form the clock signal 0, 1, 0, 1, ... The run is abandoned
// after maxSteps instructions, or if the machine halts or suspends first.
//
// m is consumed; pass a clone to keep the original.
func IsClockSignal(m *Machine, n int, maxSteps int) bool {
	var want int64
	seen := 0
	for steps := 0; seen < n && steps < maxSteps; steps++ {
		if _, err := m.Step(); err != nil {
			return false
		}
		for {
			v, ok := m.io.PopOutput()
			if !ok {
				break
			}
			if v != want {
				return false
			}
			want ^= 1
			seen++
		}
		if m.state.Done() {
			break
		}
	}
	return seen >= n
}
