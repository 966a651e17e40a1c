package model

// Window returns the hours an asset may run in, in window order. When start
// is not before end the window wraps past midnight, so Window(22, 6) is
// 22,23,0,1,2,3,4,5. Window(h, h) is empty.
func Window(start, end int) []int {
	if start == end {
		return nil
	}
	if start < end {
		hours := make([]int, 0, end-start)
		for h := start; h < end; h++ {
			hours = append(hours, h)
		}
		return hours
	}
	hours := make([]int, 0, NumHours-start+end)
	for h := start; h < NumHours; h++ {
		hours = append(hours, h)
	}
	for h := 0; h < end; h++ {
		hours = append(hours, h)
	}
	return hours
}

// EffectiveWindow clamps start to [0,23] and end to [0,24] before computing
// the window. It is used by the schedule engine for imported assets that
// never went through validation.
func EffectiveWindow(start, end int) []int {
	return Window(clampInt(start, 0, NumHours-1), clampInt(end, 0, NumHours))
}

// ClampDuration limits a duration to the window length.
func ClampDuration(duration, windowLen int) int {
	return clampInt(duration, 0, windowLen)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
