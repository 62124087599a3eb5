package scoring

// Award is the outcome of one loop-completion signal: the new score plus
// at most one celebration. FirstPoint wins over a tier upgrade when both
// apply to the same increment.
type Award struct {
	Score       int
	FirstPoint  bool
	TierUpgrade *TierInfo
}

// Apply processes a single loop-completed signal against the current score.
// Exactly one point is awarded per signal; the score never decreases.
func Apply(score int) Award {
	before := score
	after := before + 1

	award := Award{Score: after}
	if before == 0 {
		award.FirstPoint = true
		return award
	}
	if tierBefore, tierAfter := TierOf(before), TierOf(after); tierBefore != tierAfter {
		info := InfoFor(tierAfter)
		award.TierUpgrade = &info
	}
	return award
}
