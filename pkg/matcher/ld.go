package matcher

// LDMatch scans collection linearly for the entry with the smallest edit
// distance to needle, considering only entries whose length differs from
// needle's by at most tolerance (a cheap pre-filter before the full
// Levenshtein computation).
//
// Each time a strictly-better-or-equal candidate is accepted, the
// acceptance threshold is tightened by one before continuing the scan —
// this mirrors the matcher this was ported from and means later candidates
// must beat, not just match, the current best to displace it. The first
// candidate to reach a given distance therefore wins ties.
//
// Returns the matched string and true, or "" and false if nothing in
// collection is within tolerance.
func LDMatch(collection []string, needle string, tolerance int) (string, bool) {
	best := tolerance
	match := ""
	found := false

	for _, candidate := range collection {
		if abs(len(needle)-len(candidate)) > tolerance {
			continue
		}
		distance := levenshtein(needle, candidate)
		if distance <= best {
			best = distance - 1
			match = candidate
			found = true
		}
	}

	return match, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// levenshtein computes the classic edit distance between a and b using a
// two-row dynamic-programming table.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
