package curves

import "math"

// Warp aligns two curves elastically and returns their warp distance:
// the accumulated |a[i]-b[j]| over the cheapest monotone pairing of
// samples, divided by len(a)+len(b) so curves of different lengths
// compare on one scale. Identical curves score zero; a curve and its
// resampled or shifted copy score near zero; genuinely different
// shapes score high.
//
// Inputs are compared as given. For resistivity curves pass the output
// of Shape so that scale and units cancel first.
//
// The path (second return) is non-nil only when opts.ReturnPath is
// set; it pairs indices of a with indices of b from (0,0) to the final
// samples. Distance-only calls run in O(len(a)*len(b)) time and
// O(min side) memory; path calls keep the full matrix.
//
// Warp returns ErrEmptyCurve when either curve has no samples and
// ErrBand when opts.Band admits no complete alignment.
func Warp(a, b []float64, opts Options) (float64, []PathStep, error) {
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0, nil, ErrEmptyCurve
	}
	if opts.Band > 0 && opts.Band < abs(la-lb) {
		return 0, nil, ErrBand
	}

	if opts.ReturnPath {
		return warpFull(a, b, opts)
	}
	d, err := warpRolling(a, b, opts)
	return d, nil, err
}

// warpRolling computes the distance with two reused rows.
func warpRolling(a, b []float64, opts Options) (float64, error) {
	la, lb := len(a), len(b)
	prev := make([]float64, lb)
	cur := make([]float64, lb)
	pen := opts.StepPenalty

	for i := 0; i < la; i++ {
		for j := 0; j < lb; j++ {
			cur[j] = math.Inf(1)
		}
		for j := range b {
			if outOfBand(i, j, opts.Band) {
				continue
			}
			cost := math.Abs(a[i] - b[j])
			switch {
			case i == 0 && j == 0:
				cur[j] = cost
			case i == 0:
				cur[j] = cost + cur[j-1] + pen
			case j == 0:
				cur[j] = cost + prev[j] + pen
			default:
				cur[j] = cost + min3(prev[j-1], prev[j]+pen, cur[j-1]+pen)
			}
		}
		prev, cur = cur, prev
	}

	raw := prev[lb-1]
	if math.IsInf(raw, 1) {
		return 0, ErrBand
	}
	return raw / float64(la+lb), nil
}

// warpFull keeps the whole cost matrix and backtracks the path.
func warpFull(a, b []float64, opts Options) (float64, []PathStep, error) {
	la, lb := len(a), len(b)
	pen := opts.StepPenalty

	dp := make([][]float64, la)
	for i := range dp {
		dp[i] = make([]float64, lb)
		for j := range dp[i] {
			dp[i][j] = math.Inf(1)
		}
	}
	for i := 0; i < la; i++ {
		for j := 0; j < lb; j++ {
			if outOfBand(i, j, opts.Band) {
				continue
			}
			cost := math.Abs(a[i] - b[j])
			switch {
			case i == 0 && j == 0:
				dp[i][j] = cost
			case i == 0:
				dp[i][j] = cost + dp[i][j-1] + pen
			case j == 0:
				dp[i][j] = cost + dp[i-1][j] + pen
			default:
				dp[i][j] = cost + min3(dp[i-1][j-1], dp[i-1][j]+pen, dp[i][j-1]+pen)
			}
		}
	}

	raw := dp[la-1][lb-1]
	if math.IsInf(raw, 1) {
		return 0, nil, ErrBand
	}

	// Backtrack by re-evaluating the predecessor choice at each cell;
	// the diagonal wins ties so the path stays as short as possible.
	path := make([]PathStep, 0, la+lb)
	i, j := la-1, lb-1
	for {
		path = append(path, PathStep{I: i, J: j})
		if i == 0 && j == 0 {
			break
		}
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			diag := dp[i-1][j-1]
			up := dp[i-1][j] + pen
			left := dp[i][j-1] + pen
			if diag <= up && diag <= left {
				i, j = i-1, j-1
			} else if up <= left {
				i--
			} else {
				j--
			}
		}
	}
	reversePath(path)
	return raw / float64(la+lb), path, nil
}

func outOfBand(i, j, band int) bool {
	return band > 0 && abs(i-j) > band
}

func reversePath(p []PathStep) {
	for l, r := 0, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
