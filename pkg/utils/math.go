package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Min64 returns the minimum of two int64 values.
func Min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
