package engine

// CheckWinCondition reports whether the center deck has been drawn down to
// the end threshold and, if so, which side wins. The winner is the majority
// type across the remaining draw pile and the revealed pile; equal counts
// are a tie.
func (g *GameState) CheckWinCondition() (done bool, winner Team, tie bool) {
	if len(g.CenterDeck)+len(g.CenterRevealed) > g.Config.EndThreshold {
		return false, TeamGood, false
	}
	milk, blood := 0, 0
	count := func(cards []CenterCard) {
		for _, c := range cards {
			if c.Type == CenterMilk {
				milk++
			} else {
				blood++
			}
		}
	}
	count(g.CenterDeck)
	count(g.CenterRevealed)
	switch {
	case milk > blood:
		return true, TeamGood, false
	case blood > milk:
		return true, TeamEvil, false
	default:
		return true, TeamGood, true
	}
}
