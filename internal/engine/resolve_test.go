package engine

import "testing"

func TestRankTiersUniquePrimaryAndSecondary(t *testing.T) {
	primary, secondary := rankTiers([]ingredientCount{
		{Name: "a", Count: 3},
		{Name: "b", Count: 1},
	})
	if primary == nil || primary.Name != "a" {
		t.Fatalf("expected a as primary, got %+v", primary)
	}
	if len(secondary) != 1 || secondary[0].Name != "b" {
		t.Fatalf("expected b as secondary, got %+v", secondary)
	}
}

func TestRankTiersSecondTierTieDropped(t *testing.T) {
	primary, secondary := rankTiers([]ingredientCount{
		{Name: "a", Count: 3},
		{Name: "b", Count: 1},
		{Name: "c", Count: 1},
	})
	if primary == nil || primary.Name != "a" {
		t.Fatalf("expected a as primary, got %+v", primary)
	}
	if len(secondary) != 0 {
		t.Fatalf("tied second tier must be dropped, got %+v", secondary)
	}
}

func TestRankTiersTopTieDemotesToSecondary(t *testing.T) {
	primary, secondary := rankTiers([]ingredientCount{
		{Name: "a", Count: 2},
		{Name: "b", Count: 2},
		{Name: "c", Count: 1},
	})
	if primary != nil {
		t.Fatalf("contested top must have no primary, got %+v", primary)
	}
	if len(secondary) != 2 || secondary[0].Name != "a" || secondary[1].Name != "b" {
		t.Fatalf("expected a and b demoted to secondary, got %+v", secondary)
	}
}

func TestRankTiersEmptyTable(t *testing.T) {
	primary, secondary := rankTiers(nil)
	if primary != nil || secondary != nil {
		t.Fatalf("empty table must resolve to nothing")
	}
}

func TestResolutionRevealsTable(t *testing.T) {
	g, now := startedGame(t, 2, 5)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientLavender,
		pid(1): IngredientMandrake,
	})
	for _, e := range g.Table {
		if !e.Revealed {
			t.Fatalf("table card %s not revealed after resolution", e.Card.ID)
		}
	}
	if g.Phase != PhaseDay {
		t.Fatalf("expected DAY after resolution, got %v", g.Phase)
	}
}

func TestBlockSkipsPrimary(t *testing.T) {
	g, now := startedGame(t, 5, 11)
	deckBefore := len(g.CenterDeck)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientLavender,
		pid(1): IngredientLavender,
		pid(2): IngredientLavender,
		pid(3): IngredientWolfsbane,
		pid(4): IngredientWolfsbane,
	})
	if len(g.CenterDeck) != deckBefore || len(g.CenterRevealed) != 0 {
		t.Fatalf("blocked lavender still touched the center deck")
	}
	blocked := false
	for _, e := range g.Log {
		if e.Type == LogSecondary && e.Ingredient == IngredientWolfsbane {
			blocked = true
		}
	}
	if !blocked {
		t.Fatalf("block was not logged")
	}
	// Wolfsbane was secondary, not primary: no forced discards.
	for _, q := range g.Pending {
		for _, p := range q {
			if _, ok := p.(ForcedDiscardNotice); ok {
				t.Fatalf("forced discard fired from the secondary slot")
			}
		}
	}
}

func TestTopTieWithBlockerStillLogsBlock(t *testing.T) {
	g, now := startedGame(t, 4, 13)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientLavender,
		pid(1): IngredientLavender,
		pid(2): IngredientWolfsbane,
		pid(3): IngredientWolfsbane,
	})
	if countLog(g, LogPrimary) != 0 {
		t.Fatalf("contested top spot must not produce a primary effect")
	}
	found := false
	for _, e := range g.Log {
		if e.Type == LogSecondary && e.Ingredient == IngredientWolfsbane {
			found = true
		}
	}
	if !found {
		t.Fatalf("block must be logged even without a primary")
	}
}

func TestLavenderMilkPairKeepsOneFaceUp(t *testing.T) {
	g, now := startedGame(t, 2, 17)
	g.CenterDeck = []CenterCard{milk("m1"), milk("m2"), blood("b1"), blood("b2")}
	playAll(t, g, now, map[string]string{
		pid(0): IngredientLavender,
		pid(1): IngredientLavender,
	})
	if len(g.CenterRevealed) != 1 || g.CenterRevealed[0].ID != "m1" {
		t.Fatalf("expected m1 face up, got %+v", g.CenterRevealed)
	}
	if g.CenterDeck[len(g.CenterDeck)-1].ID != "m2" {
		t.Fatalf("expected m2 on the deck bottom")
	}
	public := 0
	for _, k := range g.Knowledge {
		if k.PlayerID == "" {
			public++
		}
	}
	if public != 2 {
		t.Fatalf("expected 2 public knowledge entries, got %d", public)
	}
}

func TestLavenderMixedPairSinksBothInOrder(t *testing.T) {
	g, now := startedGame(t, 2, 17)
	g.CenterDeck = []CenterCard{milk("m1"), blood("b1"), milk("m2"), blood("b2")}
	playAll(t, g, now, map[string]string{
		pid(0): IngredientLavender,
		pid(1): IngredientLavender,
	})
	if len(g.CenterRevealed) != 0 {
		t.Fatalf("nothing should stay face up")
	}
	n := len(g.CenterDeck)
	if g.CenterDeck[n-2].ID != "m1" || g.CenterDeck[n-1].ID != "b1" {
		t.Fatalf("cards must return to the bottom in order, got %+v", g.CenterDeck)
	}
}

func TestMandrakePrimaryOpensPeeks(t *testing.T) {
	g, now := startedGame(t, 2, 19)
	deckBefore := len(g.CenterDeck)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientMandrake,
		pid(1): IngredientMandrake,
	})
	if len(g.CenterDeck) != deckBefore-2 {
		t.Fatalf("two cards should be held out for peeking")
	}
	p0, ok := g.ActivePending(pid(0))
	if !ok {
		t.Fatalf("no pending decision for p0")
	}
	peek, ok := p0.(PeekKeepDiscard)
	if !ok {
		t.Fatalf("expected peek decision, got %T", p0)
	}

	g.ResolvePending(pid(0), Choice{Kind: ChoiceKeep}, now)
	if len(g.CenterDeck) != deckBefore-1 {
		t.Fatalf("kept card should return to the deck")
	}
	if g.CenterDeck[len(g.CenterDeck)-1].ID != peek.Card.ID {
		t.Fatalf("kept card should sit on the deck bottom")
	}
	g.ResolvePending(pid(1), Choice{Kind: ChoiceDiscard}, now)
	if len(g.CenterDiscard) != 1 {
		t.Fatalf("discarded peek should land in the center discard")
	}
	private := 0
	for _, k := range g.Knowledge {
		if k.PlayerID != "" {
			private++
		}
	}
	if private != 2 {
		t.Fatalf("expected 2 private knowledge entries, got %d", private)
	}
}

func TestMandrakeSecondaryShowsTopCard(t *testing.T) {
	g, now := startedGame(t, 5, 23)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientNightshade,
		pid(1): IngredientNightshade,
		pid(2): IngredientNightshade,
		pid(3): IngredientMandrake,
		pid(4): IngredientMandrake,
	})
	for _, id := range []string{pid(3), pid(4)} {
		p, ok := g.ActivePending(id)
		if !ok {
			t.Fatalf("no pending decision for %s", id)
		}
		if _, ok := p.(TopCardNotice); !ok {
			t.Fatalf("expected top-card notice for %s, got %T", id, p)
		}
	}
}

func TestFernleafSingleContributorStillSwaps(t *testing.T) {
	g, now := startedGame(t, 2, 29)
	g.SetConnected(pid(1), false, now)
	heroBefore := len(g.HeroDeck)
	oldRole := g.player(pid(0)).RoleID

	cardID := giveCard(t, g, pid(0), IngredientFernleaf)
	g.PlayCard(pid(0), cardID, now)

	p, ok := g.ActivePending(pid(0))
	if !ok {
		t.Fatalf("no swap acknowledgement for the lone contributor")
	}
	notice, ok := p.(RoleSwapNotice)
	if !ok {
		t.Fatalf("expected swap notice, got %T", p)
	}
	if notice.Role.ID != g.player(pid(0)).RoleID {
		t.Fatalf("notice does not match the assigned role")
	}
	if len(g.HeroDeck) != heroBefore {
		t.Fatalf("hero deck size changed: %d -> %d", heroBefore, len(g.HeroDeck))
	}
	// The old role is either back on the player or in the hero deck.
	if g.player(pid(0)).RoleID != oldRole {
		found := false
		for _, r := range g.HeroDeck {
			if r.ID == oldRole {
				found = true
			}
		}
		if !found {
			t.Fatalf("old role %s vanished", oldRole)
		}
	}
}

func TestFernleafSecondaryPeeksOtherContributors(t *testing.T) {
	g, now := startedGame(t, 5, 31)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientMandrake,
		pid(1): IngredientMandrake,
		pid(2): IngredientMandrake,
		pid(3): IngredientFernleaf,
		pid(4): IngredientFernleaf,
	})
	role3 := g.RolesByID[g.player(pid(3)).RoleID]
	role4 := g.RolesByID[g.player(pid(4)).RoleID]
	p, ok := g.ActivePending(pid(3))
	if !ok {
		t.Fatalf("no pending decision for p3")
	}
	peek, ok := p.(RolePeekNotice)
	if !ok {
		t.Fatalf("expected role peek, got %T", p)
	}
	if peek.Role.ID != role4.ID {
		t.Fatalf("p3 must see the only other contributor's role")
	}
	p, _ = g.ActivePending(pid(4))
	if peek, ok := p.(RolePeekNotice); !ok || peek.Role.ID != role3.ID {
		t.Fatalf("p4 must see p3's role, got %+v", p)
	}
}

func TestNightshadeAboveThresholdDiscardsMilk(t *testing.T) {
	g, now := startedGame(t, 5, 37)
	g.CenterDeck = []CenterCard{milk("m1"), blood("b1"), milk("m2"), blood("b2")}
	playAll(t, g, now, map[string]string{
		pid(0): IngredientNightshade,
		pid(1): IngredientNightshade,
		pid(2): IngredientNightshade,
		pid(3): IngredientLavender,
		pid(4): IngredientMandrake,
	})
	// 3 contributors > threshold 2: the milk card of the top two is gone.
	if len(g.CenterDiscard) != 1 || g.CenterDiscard[0].ID != "m1" {
		t.Fatalf("expected m1 discarded, got %+v", g.CenterDiscard)
	}
	if len(g.CenterDeck) != 3 {
		t.Fatalf("expected 3 cards back in the deck, got %d", len(g.CenterDeck))
	}
}

func TestNightshadeAtThresholdDiscardsBlood(t *testing.T) {
	g, now := startedGame(t, 5, 37)
	g.CenterDeck = []CenterCard{milk("m1"), blood("b1"), milk("m2"), blood("b2")}
	playAll(t, g, now, map[string]string{
		pid(0): IngredientNightshade,
		pid(1): IngredientNightshade,
		pid(2): IngredientLavender,
		pid(3): IngredientMandrake,
		pid(4): IngredientRue,
	})
	// 2 contributors <= threshold 2: the blood card of the top two is gone.
	if len(g.CenterDiscard) != 1 || g.CenterDiscard[0].ID != "b1" {
		t.Fatalf("expected b1 discarded, got %+v", g.CenterDiscard)
	}
}

func TestWolfsbanePrimaryForcesDiscards(t *testing.T) {
	g, now := startedGame(t, 3, 41)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientWolfsbane,
		pid(1): IngredientWolfsbane,
		pid(2): IngredientLavender,
	})
	// 3 table cards plus one forced discard per player.
	if len(g.Discard) != 6 {
		t.Fatalf("discard pile: got %d want 6", len(g.Discard))
	}
	for i := 0; i < 3; i++ {
		p, ok := g.ActivePending(pid(i))
		if !ok {
			t.Fatalf("no forced-discard notice for %s", pid(i))
		}
		if _, ok := p.(ForcedDiscardNotice); !ok {
			t.Fatalf("expected forced-discard notice, got %T", p)
		}
	}
}

func TestYewVoteGatesResolution(t *testing.T) {
	g, now := startedGame(t, 3, 43)
	playAll(t, g, now, map[string]string{
		pid(0): IngredientYew,
		pid(1): IngredientYew,
		pid(2): IngredientLavender,
	})
	if g.Phase != PhaseResolution {
		t.Fatalf("yew primary must hold the phase in RESOLUTION, got %v", g.Phase)
	}
	for _, id := range []string{pid(0), pid(1)} {
		p, ok := g.ActivePending(id)
		if !ok {
			t.Fatalf("no vote for %s", id)
		}
		if _, ok := p.(PoisonVote); !ok {
			t.Fatalf("expected poison vote, got %T", p)
		}
	}

	g.ResolvePending(pid(0), Choice{Kind: ChoiceTarget, Ingredient: IngredientMandrake}, now)
	if g.Phase != PhaseResolution {
		t.Fatalf("phase advanced before the last vote")
	}
	g.ResolvePending(pid(1), Choice{Kind: ChoiceTarget, Ingredient: IngredientMandrake}, now)
	if g.Phase != PhaseDay {
		t.Fatalf("expected DAY after the last vote, got %v", g.Phase)
	}
	if g.PoisonIngredient != IngredientMandrake || g.PoisonRound != g.Round+1 {
		t.Fatalf("poison target not recorded: %q round %d", g.PoisonIngredient, g.PoisonRound)
	}
	// Voters see the top of the deck as a reward.
	for _, id := range []string{pid(0), pid(1)} {
		p, ok := g.ActivePending(id)
		if !ok {
			t.Fatalf("no reward notice for %s", id)
		}
		if _, ok := p.(TopCardNotice); !ok {
			t.Fatalf("expected top-card notice, got %T", p)
		}
	}
}

func TestPoisonedIngredientPoisonsItsPlayers(t *testing.T) {
	g, now := startedGame(t, 2, 47)
	g.PoisonIngredient = IngredientMandrake
	g.PoisonRound = g.Round
	playAll(t, g, now, map[string]string{
		pid(0): IngredientMandrake,
		pid(1): IngredientLavender,
	})
	p0 := g.player(pid(0))
	if p0.PoisonedRound != 2 {
		t.Fatalf("p0 should be poisoned for round 2, got %d", p0.PoisonedRound)
	}

	// Advance to the next night; the poisoned player cannot play.
	g.EndDiscussion(pid(0), now)
	g.EndDiscussion(pid(1), now)
	if g.Phase != PhaseNight || g.Round != 2 {
		t.Fatalf("expected round 2 NIGHT, got round %d %v", g.Round, g.Phase)
	}
	cardID := giveCard(t, g, pid(0), IngredientLavender)
	g.PlayCard(pid(0), cardID, now)
	if len(g.Table) != 0 {
		t.Fatalf("poisoned player managed to play")
	}
}

func TestRueGuessGrantsPeekOnSuccess(t *testing.T) {
	g, now := startedGame(t, 2, 53)
	rue0 := giveCard(t, g, pid(0), IngredientRue)
	rue1 := giveCard(t, g, pid(1), IngredientRue)
	g.player(pid(0)).Hand = []IngredientCard{
		{ID: rue0, Name: IngredientRue},
		{ID: "lavender#h1", Name: IngredientLavender},
		{ID: "lavender#h2", Name: IngredientLavender},
	}
	g.player(pid(1)).Hand = []IngredientCard{
		{ID: rue1, Name: IngredientRue},
		{ID: "mandrake#h1", Name: IngredientMandrake},
	}
	g.PlayCard(pid(0), rue0, now)
	g.PlayCard(pid(1), rue1, now)
	if g.Phase != PhaseResolution {
		t.Fatalf("rue primary must gate resolution, got %v", g.Phase)
	}

	// Lavender is the commonest ingredient left in hands.
	g.ResolvePending(pid(0), Choice{Kind: ChoiceGuess, Ingredient: IngredientLavender}, now)
	p, ok := g.ActivePending(pid(0))
	if !ok {
		t.Fatalf("correct guess should open a peek")
	}
	if _, isPeek := p.(PeekKeepDiscard); !isPeek {
		t.Fatalf("expected peek after correct guess, got %T", p)
	}
	if g.Phase != PhaseResolution {
		t.Fatalf("phase advanced before all guesses were in")
	}

	g.ResolvePending(pid(1), Choice{Kind: ChoiceGuess, Ingredient: IngredientMandrake}, now)
	if g.Phase != PhaseDay {
		t.Fatalf("expected DAY once guesses are in, got %v", g.Phase)
	}
	if _, ok := g.ActivePending(pid(1)); ok {
		t.Fatalf("wrong guess should grant nothing")
	}

	// The granted peek stays answerable into the day.
	g.ResolvePending(pid(0), Choice{Kind: ChoiceKeep}, now)
	if _, ok := g.ActivePending(pid(0)); ok {
		t.Fatalf("peek did not drain")
	}
}
