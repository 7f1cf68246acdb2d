package engine

// applyPrimary dispatches the round's unique highest-count ingredient.
func (g *GameState) applyPrimary(c ingredientCount) {
	switch c.Name {
	case IngredientLavender:
		g.lavenderReveal(LogPrimary)
	case IngredientMandrake:
		for _, id := range c.Contributors {
			if card, ok := g.drawRandomCenter(); ok {
				g.pushPending(id, PeekKeepDiscard{Card: card})
			}
		}
		g.logf(LogPrimary, IngredientMandrake, nil, "mandrake whispers: %d brewers draw a secret card from the cauldron", len(c.Contributors))
	case IngredientFernleaf:
		g.swapRoles(c.Contributors)
	case IngredientNightshade:
		g.nightshadeReveal(len(c.Contributors))
	case IngredientWolfsbane:
		g.forceDiscards()
	default:
		g.logf(LogPrimary, c.Name, nil, "%s boils over with no effect", c.Name)
	}
}

// applySecondary dispatches one second-tier ingredient. Wolfsbane's block is
// logged by the caller; yew and rue have no secondary effect.
func (g *GameState) applySecondary(c ingredientCount, primaryName string) {
	switch c.Name {
	case IngredientLavender:
		if primaryName == IngredientFernleaf {
			g.logf(LogSecondary, IngredientLavender, nil, "the lavender fizzles while roles are swapped")
			return
		}
		g.lavenderReveal(LogSecondary)
	case IngredientMandrake:
		if len(g.CenterDeck) == 0 {
			return
		}
		top := g.CenterDeck[0]
		for _, id := range c.Contributors {
			g.pushPending(id, TopCardNotice{Card: top})
			g.learn(id, top, LocationDeck)
		}
		g.logf(LogSecondary, IngredientMandrake, nil, "mandrake murmurs: %d brewers glimpse the top of the cauldron", len(c.Contributors))
	case IngredientFernleaf:
		g.peekOtherRoles(c.Contributors)
	case IngredientNightshade:
		if len(g.CenterDeck) == 0 {
			return
		}
		sunk := g.CenterDeck[0]
		g.CenterDeck = g.CenterDeck[1:]
		g.CenterDiscard = append(g.CenterDiscard, sunk)
		g.logf(LogSecondary, IngredientNightshade, nil, "nightshade pulls a card under, unseen")
	}
}

// lavenderReveal turns the top two center cards face up for everyone. A
// milk pair keeps one card face up; anything else sends both back to the
// bottom in order.
func (g *GameState) lavenderReveal(t LogType) {
	if len(g.CenterDeck) < 2 {
		g.logf(t, IngredientLavender, nil, "the lavender finds too little left in the cauldron")
		return
	}
	first, second := g.CenterDeck[0], g.CenterDeck[1]
	g.CenterDeck = g.CenterDeck[2:]
	revealed := []CenterCard{first, second}
	if first.Type == CenterMilk && second.Type == CenterMilk {
		g.CenterRevealed = append(g.CenterRevealed, first)
		g.CenterDeck = append(g.CenterDeck, second)
		g.learn("", first, LocationRevealed)
		g.learn("", second, LocationDeck)
		g.logf(t, IngredientLavender, revealed, "lavender blooms: two milk surface and one stays face up")
		return
	}
	g.CenterDeck = append(g.CenterDeck, first, second)
	g.learn("", first, LocationDeck)
	g.learn("", second, LocationDeck)
	g.logf(t, IngredientLavender, revealed, "lavender stirs the surface: both cards sink back down")
}

// swapRoles pools the contributors' roles with one random hero-deck role,
// shuffles, and hands one back to each contributor. The entry left over
// returns to the hero deck, preserving the dealt-or-hero-deck invariant.
func (g *GameState) swapRoles(contributors []string) {
	pool := []Role{}
	for _, id := range contributors {
		p := g.player(id)
		if p == nil {
			continue
		}
		pool = append(pool, g.RolesByID[p.RoleID])
	}
	var drawn Role
	var ok bool
	g.HeroDeck, drawn, ok = pickOne(g.rng, g.HeroDeck)
	if ok {
		pool = append(pool, drawn)
	}
	if len(pool) == 0 {
		return
	}
	shuffle(g.rng, pool)
	i := 0
	for _, id := range contributors {
		p := g.player(id)
		if p == nil || i >= len(pool) {
			continue
		}
		p.RoleID = pool[i].ID
		g.pushPending(id, RoleSwapNotice{Role: pool[i]})
		i++
	}
	g.HeroDeck = append(g.HeroDeck, pool[i:]...)
	g.logf(LogPrimary, IngredientFernleaf, nil, "fernleaf curls: %d roles swirl through the cauldron", len(contributors))
}

// peekOtherRoles privately shows each contributor the role of one random
// other contributor, without naming whose it is. One lone contributor sees
// nothing.
func (g *GameState) peekOtherRoles(contributors []string) {
	if len(contributors) < 2 {
		return
	}
	for _, id := range contributors {
		others := []string{}
		for _, other := range contributors {
			if other != id {
				others = append(others, other)
			}
		}
		pick := others[g.rng.Intn(len(others))]
		p := g.player(pick)
		if p == nil {
			continue
		}
		g.pushPending(id, RolePeekNotice{Role: g.RolesByID[p.RoleID]})
	}
	g.logf(LogSecondary, IngredientFernleaf, nil, "fernleaf shivers: the swappers glimpse each other")
}

// nightshadeReveal turns the top two cards face up for everyone and keeps
// or discards them by type, depending on how many brewers joined in.
func (g *GameState) nightshadeReveal(contributorCount int) {
	n := 2
	if len(g.CenterDeck) < n {
		n = len(g.CenterDeck)
	}
	if n == 0 {
		g.logf(LogPrimary, IngredientNightshade, nil, "the nightshade finds the cauldron empty")
		return
	}
	top := append([]CenterCard{}, g.CenterDeck[:n]...)
	g.CenterDeck = g.CenterDeck[n:]

	threshold := (len(g.Players) - 1) / 2
	discardMilk := contributorCount > threshold
	for _, card := range top {
		if (card.Type == CenterMilk) == discardMilk {
			g.CenterDiscard = append(g.CenterDiscard, card)
			g.learn("", card, LocationDiscard)
		} else {
			g.CenterDeck = append(g.CenterDeck, card)
			g.learn("", card, LocationDeck)
		}
	}
	shuffle(g.rng, g.CenterDeck)
	if discardMilk {
		g.logf(LogPrimary, IngredientNightshade, top, "nightshade overwhelms the brew: milk curdles away")
	} else {
		g.logf(LogPrimary, IngredientNightshade, top, "nightshade thins out: blood boils away")
	}
}

// forceDiscards takes one uniformly random hand card from every seated
// player, contributors or not, and opens an acknowledgement for each.
func (g *GameState) forceDiscards() {
	n := 0
	for i := range g.Players {
		p := &g.Players[i]
		if len(p.Hand) == 0 {
			continue
		}
		var card IngredientCard
		p.Hand, card, _ = pickOne(g.rng, p.Hand)
		g.Discard = append(g.Discard, card)
		g.pushPending(p.ID, ForcedDiscardNotice{Card: card})
		n++
	}
	g.logf(LogPrimary, IngredientWolfsbane, nil, "wolfsbane bites: %d brewers lose a card from their hand", n)
}
