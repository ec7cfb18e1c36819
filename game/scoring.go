package game

// ComputeHandScore sums the numeric cards, applies each score modifier at
// most once however many copies are held, adds the completion bonus for big
// hands, and clamps at zero unless negatives are allowed. A busted player
// scores zero no matter what they hold.
func ComputeHandScore(hand []Card, busted bool, cfg Config) int {
	if busted {
		return 0
	}
	sum := 0
	double, plus4, plus5, minus6 := false, false, false, false
	for _, c := range hand {
		if v, ok := c.Numeric(); ok {
			sum += v
			continue
		}
		switch c {
		case CardDouble:
			double = true
		case CardPlusFour:
			plus4 = true
		case CardPlusFive:
			plus5 = true
		case CardMinusSix:
			minus6 = true
		}
	}
	score := sum
	if double {
		score *= 2
	}
	if plus4 {
		score += 4
	}
	if plus5 {
		score += 5
	}
	if minus6 {
		score -= 6
	}
	if !cfg.DisableBonus && len(hand) >= cfg.BonusThreshold {
		score += cfg.BonusPoints
	}
	if score < 0 && !cfg.AllowNegative {
		score = 0
	}
	return score
}
