package bots

import (
	"math/rand"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

// Bot picks a night play and answers pending decisions for one seat.
type Bot interface {
	ChooseCard(g *engine.GameState, playerID string) (string, bool)
	ChooseDecision(g *engine.GameState, playerID string, p engine.Pending) engine.Choice
}

type EasyBot struct {
	RNG *rand.Rand
}

func NewEasy(seed int64) *EasyBot {
	return &EasyBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *EasyBot) ChooseCard(g *engine.GameState, playerID string) (string, bool) {
	hand := handOf(g, playerID)
	if len(hand) == 0 {
		return "", false
	}
	return hand[b.RNG.Intn(len(hand))].ID, true
}

func (b *EasyBot) ChooseDecision(g *engine.GameState, playerID string, p engine.Pending) engine.Choice {
	switch d := p.(type) {
	case engine.PeekKeepDiscard:
		if b.RNG.Intn(2) == 0 {
			return engine.Choice{Kind: engine.ChoiceKeep}
		}
		return engine.Choice{Kind: engine.ChoiceDiscard}
	case engine.PoisonVote:
		if len(d.Options) == 0 {
			return engine.Choice{Kind: engine.ChoiceTarget, Ingredient: engine.IngredientYew}
		}
		return engine.Choice{Kind: engine.ChoiceTarget, Ingredient: d.Options[b.RNG.Intn(len(d.Options))]}
	case engine.CommonGuess:
		return engine.Choice{Kind: engine.ChoiceGuess, Ingredient: randomCatalogName(b.RNG, g)}
	default:
		return engine.Choice{Kind: engine.ChoiceConfirm}
	}
}

// NormalBot plays toward making its commonest ingredient the primary and
// keeps milk in the cauldron.
type NormalBot struct {
	RNG *rand.Rand
}

func NewNormal(seed int64) *NormalBot {
	return &NormalBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *NormalBot) ChooseCard(g *engine.GameState, playerID string) (string, bool) {
	hand := handOf(g, playerID)
	if len(hand) == 0 {
		return "", false
	}
	counts := map[string]int{}
	for _, c := range hand {
		counts[c.Name]++
	}
	best := hand[0]
	for _, c := range hand {
		if counts[c.Name] > counts[best.Name] {
			best = c
		}
	}
	return best.ID, true
}

func (b *NormalBot) ChooseDecision(g *engine.GameState, playerID string, p engine.Pending) engine.Choice {
	switch d := p.(type) {
	case engine.PeekKeepDiscard:
		if d.Card.Type == engine.CenterMilk {
			return engine.Choice{Kind: engine.ChoiceKeep}
		}
		return engine.Choice{Kind: engine.ChoiceDiscard}
	case engine.PoisonVote:
		if name, ok := commonestInHand(g, playerID); ok {
			return engine.Choice{Kind: engine.ChoiceTarget, Ingredient: name}
		}
		return engine.Choice{Kind: engine.ChoiceTarget, Ingredient: randomCatalogName(b.RNG, g)}
	case engine.CommonGuess:
		if name, ok := commonestInHand(g, playerID); ok {
			return engine.Choice{Kind: engine.ChoiceGuess, Ingredient: name}
		}
		return engine.Choice{Kind: engine.ChoiceGuess, Ingredient: randomCatalogName(b.RNG, g)}
	default:
		return engine.Choice{Kind: engine.ChoiceConfirm}
	}
}

func handOf(g *engine.GameState, playerID string) []engine.IngredientCard {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return g.Players[i].Hand
		}
	}
	return nil
}

func commonestInHand(g *engine.GameState, playerID string) (string, bool) {
	hand := handOf(g, playerID)
	if len(hand) == 0 {
		return "", false
	}
	counts := map[string]int{}
	best := hand[0].Name
	for _, c := range hand {
		counts[c.Name]++
		if counts[c.Name] > counts[best] {
			best = c.Name
		}
	}
	return best, true
}

func randomCatalogName(rng *rand.Rand, g *engine.GameState) string {
	if len(g.Catalog.Ingredients) == 0 {
		return engine.IngredientLavender
	}
	return g.Catalog.Ingredients[rng.Intn(len(g.Catalog.Ingredients))].Name
}
