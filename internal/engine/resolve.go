package engine

import (
	"sort"
	"time"
)

// ingredientCount is one ingredient's showing for the round, with the
// players who contributed it in seat order.
type ingredientCount struct {
	Name         string
	Count        int
	Contributors []string
}

// tallyTable counts the revealed table by ingredient, ordered by descending
// count and ascending name so resolution is deterministic.
func (g *GameState) tallyTable() []ingredientCount {
	byName := map[string]*ingredientCount{}
	order := []string{}
	for _, e := range g.Table {
		c, ok := byName[e.Card.Name]
		if !ok {
			c = &ingredientCount{Name: e.Card.Name}
			byName[e.Card.Name] = c
			order = append(order, e.Card.Name)
		}
		c.Count++
		c.Contributors = append(c.Contributors, e.PlayerID)
	}
	counts := make([]ingredientCount, 0, len(order))
	for _, name := range order {
		counts = append(counts, *byName[name])
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}

// rankTiers splits the tally into the primary ingredient and the secondary
// set. A contested top count demotes every top ingredient to secondary; a
// contested second tier is dropped entirely.
func rankTiers(counts []ingredientCount) (primary *ingredientCount, secondary []ingredientCount) {
	if len(counts) == 0 {
		return nil, nil
	}
	top := counts[0].Count
	topTier := []ingredientCount{}
	rest := []ingredientCount{}
	for _, c := range counts {
		if c.Count == top {
			topTier = append(topTier, c)
		} else {
			rest = append(rest, c)
		}
	}
	if len(topTier) > 1 {
		return nil, topTier
	}
	primary = &topTier[0]
	if len(rest) == 0 {
		return primary, nil
	}
	second := rest[0].Count
	secondTier := []ingredientCount{}
	for _, c := range rest {
		if c.Count == second {
			secondTier = append(secondTier, c)
		}
	}
	if len(secondTier) != 1 {
		return primary, nil
	}
	return primary, secondTier
}

// resolveTable runs the synchronous resolution pass: reveal everything,
// rank, apply secondaries then the primary, and move to day. Vote-gated
// primaries (yew, rue) hold the phase in RESOLUTION until the last
// submission arrives.
func (g *GameState) resolveTable(now time.Time) {
	g.Phase = PhaseResolution
	for i := range g.Table {
		g.Table[i].Revealed = true
	}
	g.applyPoisonMarks()

	counts := g.tallyTable()
	primary, secondary := rankTiers(counts)

	blocked := false
	for _, s := range secondary {
		if s.Name == IngredientWolfsbane {
			blocked = true
		}
	}

	primaryName := ""
	if primary != nil {
		primaryName = primary.Name
	}
	for _, s := range secondary {
		g.applySecondary(s, primaryName)
	}
	if blocked {
		g.logf(LogSecondary, IngredientWolfsbane, nil, "wolfsbane taints the brew: the main effect is blocked")
	}

	if primary != nil && !blocked {
		if g.openVoteGate(*primary) {
			return // stays in RESOLUTION until the gate drains
		}
		g.applyPrimary(*primary)
	}
	g.enterDay(now)
}

// applyPoisonMarks poisons anyone who played the cursed ingredient this
// round; they sit out the next one.
func (g *GameState) applyPoisonMarks() {
	if g.PoisonIngredient == "" || g.PoisonRound != g.Round {
		return
	}
	for _, e := range g.Table {
		if e.Card.Name != g.PoisonIngredient {
			continue
		}
		p := g.player(e.PlayerID)
		if p == nil {
			continue
		}
		p.PoisonedRound = g.Round + 1
		g.logf(LogInfo, g.PoisonIngredient, nil, "%s tastes the poisoned %s and must sit out the next round", p.Name, g.PoisonIngredient)
	}
}

// openVoteGate opens per-contributor vote or guess decisions for the two
// submission-gated ingredients. It reports whether resolution is now gated.
func (g *GameState) openVoteGate(primary ingredientCount) bool {
	switch primary.Name {
	case IngredientYew:
		options := make([]string, 0, len(g.Catalog.Ingredients))
		for _, ing := range g.Catalog.Ingredients {
			options = append(options, ing.Name)
		}
		g.yewVotes = map[string]string{}
		for _, id := range primary.Contributors {
			g.pushPending(id, PoisonVote{Options: options})
		}
		g.awaiting = IngredientYew
		g.logf(LogPrimary, IngredientYew, nil, "the yew circle gathers: %d brewers vote on an ingredient to poison", len(primary.Contributors))
		return true
	case IngredientRue:
		for _, id := range primary.Contributors {
			g.pushPending(id, CommonGuess{})
		}
		g.awaiting = IngredientRue
		g.logf(LogPrimary, IngredientRue, nil, "rue sharpens the senses: %d brewers guess the commonest ingredient", len(primary.Contributors))
		return true
	default:
		return false
	}
}

// finishYewVote tallies the poison vote, breaking ties uniformly at random,
// and rewards every voter with a look at the top of the center deck.
func (g *GameState) finishYewVote(now time.Time) {
	tally := map[string]int{}
	for _, target := range g.yewVotes {
		tally[target]++
	}
	best := 0
	tied := []string{}
	for name, n := range tally {
		if n > best {
			best = n
			tied = []string{name}
		} else if n == best {
			tied = append(tied, name)
		}
	}
	sort.Strings(tied)
	if len(tied) > 0 {
		target := tied[g.rng.Intn(len(tied))]
		g.PoisonIngredient = target
		g.PoisonRound = g.Round + 1
		g.logf(LogPrimary, IngredientYew, nil, "the vote falls on %s: it is poisoned for the next round", target)
		if len(g.CenterDeck) > 0 {
			top := g.CenterDeck[0]
			for voter := range g.yewVotes {
				g.pushPending(voter, TopCardNotice{Card: top})
				g.learn(voter, top, LocationDeck)
			}
		}
	}
	g.awaiting = ""
	g.yewVotes = nil
	g.enterDay(now)
}

// applyCommonGuess checks one rue guess against the hands as they stand; a
// correct guess earns the mandrake peek privilege.
func (g *GameState) applyCommonGuess(playerID, guess string) {
	tally := map[string]int{}
	for _, p := range g.Players {
		for _, c := range p.Hand {
			tally[c.Name]++
		}
	}
	best := 0
	for _, n := range tally {
		if n > best {
			best = n
		}
	}
	if best == 0 || tally[guess] != best {
		return
	}
	if card, ok := g.drawRandomCenter(); ok {
		g.pushPending(playerID, PeekKeepDiscard{Card: card})
	}
}

func (g *GameState) drawRandomCenter() (CenterCard, bool) {
	var card CenterCard
	var ok bool
	g.CenterDeck, card, ok = pickOne(g.rng, g.CenterDeck)
	return card, ok
}
