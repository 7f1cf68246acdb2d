package engine

import "time"

// Start begins the game from the lobby: fresh decks, roles, hands, and the
// first night. The transport layer is responsible for only forwarding the
// host's start intent.
func (g *GameState) Start(now time.Time) {
	if g.Phase != PhaseLobby || len(g.Players) < 2 {
		return
	}
	g.Deck = BuildIngredientDeck(g.rng, g.Catalog, g.Config.CopiesPerIngredient)
	g.Discard = nil
	g.CenterDeck = buildCenterDeck(g.rng, g.Config.CenterPerType)
	g.CenterRevealed = nil
	g.CenterDiscard = nil
	g.assignRoles()

	g.Round = 1
	g.Table = nil
	g.Claims = map[string][]string{}
	g.Pending = map[string][]Pending{}
	g.Log = nil
	g.Knowledge = nil
	g.PoisonIngredient = ""
	g.PoisonRound = 0
	for i := range g.Players {
		g.Players[i].Hand = nil
		g.Players[i].EndedDiscussion = false
		g.Players[i].PoisonedRound = 0
	}
	g.dealToHandSize()

	g.Phase = PhaseNight
	g.Expiry = now.Add(time.Duration(g.Config.NightSeconds) * time.Second)
}

// PlayCard commits one hand card to the table. Resolution fires as soon as
// every active player has committed.
func (g *GameState) PlayCard(playerID, cardID string, now time.Time) {
	if g.Phase != PhaseNight {
		return
	}
	p := g.player(playerID)
	if p == nil || !p.Connected || g.Poisoned(p) {
		return
	}
	for _, e := range g.Table {
		if e.PlayerID == playerID {
			return
		}
	}
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			g.Table = append(g.Table, TableEntry{PlayerID: playerID, Card: c})
			if len(g.Table) >= g.activeCount() {
				g.resolveTable(now)
			}
			return
		}
	}
}

// UnplayCard returns the player's table card to their hand.
func (g *GameState) UnplayCard(playerID string) {
	if g.Phase != PhaseNight {
		return
	}
	for i, e := range g.Table {
		if e.PlayerID == playerID {
			p := g.player(playerID)
			if p == nil {
				return
			}
			p.Hand = append(p.Hand, e.Card)
			g.Table = append(g.Table[:i], g.Table[i+1:]...)
			return
		}
	}
}

// ClaimCard toggles the player's claim marker on a revealed table card.
// Several players may claim the same card.
func (g *GameState) ClaimCard(playerID, cardID string) {
	if g.Phase != PhaseDay {
		return
	}
	if g.player(playerID) == nil {
		return
	}
	found := false
	for _, e := range g.Table {
		if e.Card.ID == cardID && e.Revealed {
			found = true
			break
		}
	}
	if !found {
		return
	}
	claimants := g.Claims[cardID]
	for i, id := range claimants {
		if id == playerID {
			claimants = append(claimants[:i], claimants[i+1:]...)
			if len(claimants) == 0 {
				delete(g.Claims, cardID)
			} else {
				g.Claims[cardID] = claimants
			}
			return
		}
	}
	g.Claims[cardID] = append(claimants, playerID)
}

// EndDiscussion marks the player done for the day; the round advances once
// every seated player is done.
func (g *GameState) EndDiscussion(playerID string, now time.Time) {
	if g.Phase != PhaseDay {
		return
	}
	p := g.player(playerID)
	if p == nil {
		return
	}
	p.EndedDiscussion = true
	for i := range g.Players {
		if !g.Players[i].EndedDiscussion {
			return
		}
	}
	g.nextRound(now)
}

// nextRound clears the table and claims and opens the next night.
func (g *GameState) nextRound(now time.Time) {
	g.dropStalePending()
	g.Table = nil
	g.Claims = map[string][]string{}
	g.Round++
	for i := range g.Players {
		g.Players[i].EndedDiscussion = false
	}
	g.Phase = PhaseNight
	g.Expiry = now.Add(time.Duration(g.Config.NightSeconds) * time.Second)
}

// TickExpiry applies timer-driven transitions. The caller polls it; the
// engine never schedules anything itself.
func (g *GameState) TickExpiry(now time.Time) {
	switch g.Phase {
	case PhaseNight:
		if now.Before(g.Expiry) {
			return
		}
		g.forceRemainingPlays(now)
	case PhaseDay:
		if now.Before(g.Expiry) {
			return
		}
		// Day advances regardless of outstanding decisions; they become
		// unresolvable no-ops.
		g.nextRound(now)
	case PhaseResolution:
		// Vote-gated rounds wait for the queue to drain, however long that
		// takes.
	}
}

// forceRemainingPlays plays a uniformly random hand card for every connected
// active player who has not committed, then resolves with whatever is on the
// table.
func (g *GameState) forceRemainingPlays(now time.Time) {
	played := map[string]bool{}
	for _, e := range g.Table {
		played[e.PlayerID] = true
	}
	for i := range g.Players {
		p := &g.Players[i]
		if !p.Connected || g.Poisoned(p) || played[p.ID] || len(p.Hand) == 0 {
			continue
		}
		var card IngredientCard
		p.Hand, card, _ = pickOne(g.rng, p.Hand)
		g.Table = append(g.Table, TableEntry{PlayerID: p.ID, Card: card})
		g.pushPending(p.ID, ForcedPlayNotice{Card: card})
	}
	g.resolveTable(now)
}

// enterDay moves the played cards to the discard pile, refills hands and
// checks for the end of the game. Pending decisions opened during
// resolution stay outstanding into the day.
func (g *GameState) enterDay(now time.Time) {
	for _, e := range g.Table {
		if !g.inDiscard(e.Card.ID) {
			g.Discard = append(g.Discard, e.Card)
		}
	}
	g.dealToHandSize()

	if done, winner, tie := g.CheckWinCondition(); done {
		g.Phase = PhaseEnded
		g.Winner = winner
		g.Tie = tie
		g.Expiry = time.Time{}
		if tie {
			g.logf(LogInfo, "", nil, "the cauldron runs dry: the brew is balanced, nobody wins")
		} else {
			g.logf(LogInfo, "", nil, "the cauldron runs dry: %s wins", winner)
		}
		return
	}
	g.Phase = PhaseDay
	g.Expiry = now.Add(time.Duration(g.Config.DaySeconds) * time.Second)
}

func (g *GameState) inDiscard(cardID string) bool {
	for _, c := range g.Discard {
		if c.ID == cardID {
			return true
		}
	}
	return false
}
