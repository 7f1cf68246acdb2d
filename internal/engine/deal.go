package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// BuildIngredientDeck creates the configured number of copies of every
// catalog ingredient and shuffles them. Card ids are stable per physical
// copy so plays can be tracked across hands, table and discard.
func BuildIngredientDeck(rng *rand.Rand, cat Catalog, copies int) []IngredientCard {
	deck := make([]IngredientCard, 0, len(cat.Ingredients)*copies)
	for _, ing := range cat.Ingredients {
		for i := 0; i < copies; i++ {
			deck = append(deck, IngredientCard{
				ID:    fmt.Sprintf("%s#%d", ing.Name, i),
				Name:  ing.Name,
				Image: ing.Image,
			})
		}
	}
	shuffle(rng, deck)
	return deck
}

func buildCenterDeck(rng *rand.Rand, perType int) []CenterCard {
	deck := make([]CenterCard, 0, 2*perType)
	for i := 0; i < perType; i++ {
		deck = append(deck, CenterCard{ID: uuid.NewString(), Type: CenterMilk})
		deck = append(deck, CenterCard{ID: uuid.NewString(), Type: CenterBlood})
	}
	shuffle(rng, deck)
	return deck
}

// evilCount is the evil-team seat allocation for n players.
func evilCount(n int) int {
	e := n / 3
	if e < 1 {
		e = 1
	}
	if n >= 5 && e < 2 {
		e = 2
	}
	return e
}

// assignRoles deals one role per player, partitioning the catalog pool by
// team. When the catalog runs short it synthesizes filler GOOD roles rather
// than failing; undealt catalog roles become the hero deck.
func (g *GameState) assignRoles() {
	good := []Role{}
	evil := []Role{}
	for _, r := range g.Catalog.Roles {
		if r.Team == TeamEvil {
			evil = append(evil, r)
		} else {
			good = append(good, r)
		}
	}

	n := len(g.Players)
	wantEvil := evilCount(n)
	wantGood := n - wantEvil

	var dealt []Role
	evil, drawnEvil := sample(g.rng, evil, wantEvil)
	dealt = append(dealt, drawnEvil...)
	for len(dealt) < wantEvil {
		dealt = append(dealt, fillerRole(len(dealt)))
	}
	good, drawnGood := sample(g.rng, good, wantGood)
	dealt = append(dealt, drawnGood...)
	for len(dealt) < n {
		dealt = append(dealt, fillerRole(len(dealt)))
	}
	shuffle(g.rng, dealt)

	g.RolesByID = map[string]Role{}
	for _, r := range dealt {
		g.RolesByID[r.ID] = r
	}
	for i := range g.Players {
		g.Players[i].RoleID = dealt[i].ID
	}

	g.HeroDeck = append(append([]Role{}, good...), evil...)
	for _, r := range g.HeroDeck {
		g.RolesByID[r.ID] = r
	}
}

func fillerRole(i int) Role {
	return Role{
		ID:   fmt.Sprintf("filler#%d", i),
		Name: fmt.Sprintf("Villager %d", i+1),
		Team: TeamGood,
	}
}

// dealToHandSize tops every hand up to the configured size, reshuffling the
// discard pile into the draw pile on exhaustion. When both piles run dry
// dealing stops silently and hands stay short.
func (g *GameState) dealToHandSize() {
	for i := range g.Players {
		for len(g.Players[i].Hand) < g.Config.HandSize {
			card, ok := g.drawIngredient()
			if !ok {
				return
			}
			g.Players[i].Hand = append(g.Players[i].Hand, card)
		}
	}
}

func (g *GameState) drawIngredient() (IngredientCard, bool) {
	if len(g.Deck) == 0 {
		if len(g.Discard) == 0 {
			return IngredientCard{}, false
		}
		g.Deck = g.Discard
		g.Discard = nil
		shuffle(g.rng, g.Deck)
	}
	card := g.Deck[0]
	g.Deck = g.Deck[1:]
	return card, true
}
