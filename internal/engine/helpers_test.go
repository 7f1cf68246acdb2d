package engine

import (
	"fmt"
	"testing"
	"time"
)

func testCatalog() Catalog {
	cat := Catalog{
		Ingredients: []IngredientSpec{
			{Name: IngredientLavender},
			{Name: IngredientMandrake},
			{Name: IngredientFernleaf},
			{Name: IngredientNightshade},
			{Name: IngredientWolfsbane},
			{Name: IngredientYew},
			{Name: IngredientRue},
		},
	}
	for i := 0; i < 6; i++ {
		cat.Roles = append(cat.Roles, Role{ID: fmt.Sprintf("good#%d", i), Name: fmt.Sprintf("Good %d", i), Team: TeamGood})
	}
	for i := 0; i < 3; i++ {
		cat.Roles = append(cat.Roles, Role{ID: fmt.Sprintf("evil#%d", i), Name: fmt.Sprintf("Evil %d", i), Team: TeamEvil})
	}
	return cat
}

func pid(i int) string { return fmt.Sprintf("p%d", i) }

func startTime() time.Time { return time.Unix(1_700_000_000, 0) }

func startedGame(t *testing.T, players int, seed int64) (*GameState, time.Time) {
	t.Helper()
	g := NewGame(DefaultConfig(), testCatalog(), seed)
	for i := 0; i < players; i++ {
		g.AddPlayer(pid(i), pid(i))
	}
	now := time.Unix(1_700_000_000, 0)
	g.Start(now)
	if g.Phase != PhaseNight {
		t.Fatalf("expected NIGHT after start, got %v", g.Phase)
	}
	return g, now
}

// giveCard plants a card of the named ingredient in the player's hand and
// returns its id, so tests control exactly what gets played.
func giveCard(t *testing.T, g *GameState, playerID, name string) string {
	t.Helper()
	p := g.player(playerID)
	if p == nil {
		t.Fatalf("no player %s", playerID)
	}
	id := fmt.Sprintf("%s#test-%s-%d", name, playerID, len(p.Hand))
	p.Hand = append(p.Hand, IngredientCard{ID: id, Name: name})
	return id
}

// playAll plays one planted card of the given ingredient per player, in
// order, triggering resolution on the last play.
func playAll(t *testing.T, g *GameState, now time.Time, names map[string]string) {
	t.Helper()
	for i := 0; i < len(g.Players); i++ {
		id := g.Players[i].ID
		name, ok := names[id]
		if !ok {
			continue
		}
		cardID := giveCard(t, g, id, name)
		g.PlayCard(id, cardID, now)
	}
}

func milk(id string) CenterCard  { return CenterCard{ID: id, Type: CenterMilk} }
func blood(id string) CenterCard { return CenterCard{ID: id, Type: CenterBlood} }

func countLog(g *GameState, t LogType) int {
	n := 0
	for _, e := range g.Log {
		if e.Type == t {
			n++
		}
	}
	return n
}
