// Package sim runs seeded bot self-play against the engine and checks the
// bookkeeping invariants after every mutation. It backs the fuzz and
// many-seeds tests.
package sim

import (
	"fmt"
	"time"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/bots"
	"github.com/jagchew1/ireland-cauldron-sub000/internal/catalog"
	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

// RunSelfPlay plays a full game with the given number of bot seats and
// returns the first invariant violation found, if any. The game either ends
// or runs out of maxSteps, which is not an error.
func RunSelfPlay(seed int64, players, maxSteps int) error {
	cfg := engine.DefaultConfig()
	g := engine.NewGame(cfg, catalog.Default(), seed)
	seats := map[string]bots.Bot{}
	for i := 0; i < players; i++ {
		id := fmt.Sprintf("bot-%d", i)
		g.AddPlayer(id, id)
		if i%2 == 0 {
			seats[id] = bots.NewEasy(seed + int64(i))
		} else {
			seats[id] = bots.NewNormal(seed + int64(i))
		}
	}

	now := time.Unix(1_700_000_000, 0)
	g.Start(now)
	if err := checkInvariants(g); err != nil {
		return err
	}

	for step := 0; step < maxSteps; step++ {
		now = now.Add(time.Second)
		switch g.Phase {
		case engine.PhaseNight:
			stepNight(g, seats, now)
		case engine.PhaseResolution, engine.PhaseDay:
			stepDecisions(g, seats, now)
			if g.Phase == engine.PhaseDay {
				for id := range seats {
					g.EndDiscussion(id, now)
				}
			}
		case engine.PhaseEnded:
			return checkInvariants(g)
		}
		if err := checkInvariants(g); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
	}
	return nil
}

func stepNight(g *engine.GameState, seats map[string]bots.Bot, now time.Time) {
	for i := range g.Players {
		if g.Phase != engine.PhaseNight {
			return
		}
		id := g.Players[i].ID
		bot := seats[id]
		if bot == nil {
			continue
		}
		if cardID, ok := bot.ChooseCard(g, id); ok {
			g.PlayCard(id, cardID, now)
		}
	}
	// Anyone left (poisoned or empty-handed seats) is handled by expiry.
	if g.Phase == engine.PhaseNight {
		g.TickExpiry(g.Expiry.Add(time.Second))
	}
}

func stepDecisions(g *engine.GameState, seats map[string]bots.Bot, now time.Time) {
	for i := range g.Players {
		id := g.Players[i].ID
		bot := seats[id]
		if bot == nil {
			continue
		}
		for {
			p, ok := g.ActivePending(id)
			if !ok {
				break
			}
			g.ResolvePending(id, bot.ChooseDecision(g, id, p), now)
		}
	}
}

// checkInvariants verifies the card and role conservation rules the rest of
// the engine depends on.
func checkInvariants(g *engine.GameState) error {
	// Every role id is either on exactly one player or in the hero deck.
	seen := map[string]int{}
	for _, p := range g.Players {
		if p.RoleID != "" {
			seen[p.RoleID]++
		}
	}
	for _, r := range g.HeroDeck {
		seen[r.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			return fmt.Errorf("role %s held %d times", id, n)
		}
	}

	// Center cards are conserved across deck, revealed, discard and cards
	// held open by peek decisions.
	held := 0
	for _, q := range g.Pending {
		for _, p := range q {
			if _, ok := p.(engine.PeekKeepDiscard); ok {
				held++
			}
		}
	}
	total := len(g.CenterDeck) + len(g.CenterRevealed) + len(g.CenterDiscard) + held
	want := 2 * g.Config.CenterPerType
	if g.Round > 0 && total != want {
		return fmt.Errorf("center cards: have %d want %d", total, want)
	}

	// The table never outgrows the active seat count.
	if len(g.Table) > len(g.Players) {
		return fmt.Errorf("table has %d entries for %d players", len(g.Table), len(g.Players))
	}

	// Ingredient cards are conserved at night, when none sit on the table
	// in a transient state.
	if g.Phase == engine.PhaseNight {
		n := len(g.Deck) + len(g.Discard) + len(g.Table)
		for _, p := range g.Players {
			n += len(p.Hand)
		}
		want := len(g.Catalog.Ingredients) * g.Config.CopiesPerIngredient
		if n != want {
			return fmt.Errorf("ingredient cards: have %d want %d", n, want)
		}
	}
	return nil
}
