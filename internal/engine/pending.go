package engine

import "time"

// Pending is a private decision awaiting one player's input. Each variant
// carries only the fields its kind needs; dispatch is an exhaustive type
// switch in resolveChoice.
type Pending interface {
	pending()
}

// PeekKeepDiscard shows one center card drawn from the deck; the player
// returns it to the deck bottom (keep) or sends it to the discard.
type PeekKeepDiscard struct {
	Card CenterCard
}

// TopCardNotice shows the current top of the center deck, acknowledge-only.
type TopCardNotice struct {
	Card CenterCard
}

// RoleSwapNotice names the player's new role after a swap, acknowledge-only.
type RoleSwapNotice struct {
	Role Role
}

// RolePeekNotice shows the role of one unnamed other contributor.
type RolePeekNotice struct {
	Role Role
}

// ForcedDiscardNotice shows the hand card lost to a forced discard.
type ForcedDiscardNotice struct {
	Card IngredientCard
}

// ForcedPlayNotice shows the hand card played on the player's behalf at
// night expiry.
type ForcedPlayNotice struct {
	Card IngredientCard
}

// PoisonVote collects the player's target for the poison vote.
type PoisonVote struct {
	Options []string
}

// CommonGuess collects the player's guess for the most common hand
// ingredient.
type CommonGuess struct{}

func (PeekKeepDiscard) pending()     {}
func (TopCardNotice) pending()       {}
func (RoleSwapNotice) pending()      {}
func (RolePeekNotice) pending()      {}
func (ForcedDiscardNotice) pending() {}
func (ForcedPlayNotice) pending()    {}
func (PoisonVote) pending()          {}
func (CommonGuess) pending()         {}

type ChoiceKind int

const (
	ChoiceKeep ChoiceKind = iota
	ChoiceDiscard
	ChoiceConfirm
	ChoiceTarget
	ChoiceGuess
)

// Choice is a player's answer to their active pending decision. Ingredient
// carries the target or guessed name for vote and guess decisions.
type Choice struct {
	Kind       ChoiceKind
	Ingredient string
}

func (g *GameState) pushPending(playerID string, p Pending) {
	g.Pending[playerID] = append(g.Pending[playerID], p)
}

// ActivePending returns the decision the player must answer next, if any.
func (g *GameState) ActivePending(playerID string) (Pending, bool) {
	q := g.Pending[playerID]
	if len(q) == 0 {
		return nil, false
	}
	return q[0], true
}

// PendingEmpty reports whether the decision queue is fully drained.
func (g *GameState) PendingEmpty() bool {
	for _, q := range g.Pending {
		if len(q) > 0 {
			return false
		}
	}
	return true
}

// ResolvePending applies the player's choice to their active decision and
// removes it. A player with no pending decision is a no-op, which makes
// duplicate and late submissions harmless.
func (g *GameState) ResolvePending(playerID string, c Choice, now time.Time) {
	q := g.Pending[playerID]
	if len(q) == 0 {
		return
	}
	head := q[0]
	if !g.resolveChoice(playerID, head, c) {
		return
	}
	q = g.Pending[playerID] // resolveChoice may have queued more
	g.Pending[playerID] = q[1:]
	if len(g.Pending[playerID]) == 0 {
		delete(g.Pending, playerID)
	}
	g.afterPendingResolved(now)
}

// resolveChoice mutates state for one decision. It returns false when the
// submitted choice is invalid for the decision kind, leaving the decision
// open.
func (g *GameState) resolveChoice(playerID string, p Pending, c Choice) bool {
	switch d := p.(type) {
	case PeekKeepDiscard:
		switch c.Kind {
		case ChoiceKeep:
			g.CenterDeck = append(g.CenterDeck, d.Card)
			g.learn(playerID, d.Card, LocationDeck)
		case ChoiceDiscard:
			g.CenterDiscard = append(g.CenterDiscard, d.Card)
			g.learn(playerID, d.Card, LocationDiscard)
		default:
			return false
		}
		return true
	case TopCardNotice, RoleSwapNotice, RolePeekNotice, ForcedDiscardNotice, ForcedPlayNotice:
		return c.Kind == ChoiceConfirm
	case PoisonVote:
		if c.Kind != ChoiceTarget || c.Ingredient == "" {
			return false
		}
		g.yewVotes[playerID] = c.Ingredient
		return true
	case CommonGuess:
		if c.Kind != ChoiceGuess || c.Ingredient == "" {
			return false
		}
		g.applyCommonGuess(playerID, c.Ingredient)
		return true
	default:
		return false
	}
}

// afterPendingResolved closes out a vote- or guess-gated resolution once
// every contributor has answered.
func (g *GameState) afterPendingResolved(now time.Time) {
	if g.Phase != PhaseResolution || g.awaiting == "" {
		return
	}
	switch g.awaiting {
	case IngredientYew:
		if g.countPendingKind(isPoisonVote) > 0 {
			return
		}
		g.finishYewVote(now)
	case IngredientRue:
		if g.countPendingKind(isCommonGuess) > 0 {
			return
		}
		g.awaiting = ""
		g.enterDay(now)
	}
}

func isPoisonVote(p Pending) bool  { _, ok := p.(PoisonVote); return ok }
func isCommonGuess(p Pending) bool { _, ok := p.(CommonGuess); return ok }

func (g *GameState) countPendingKind(match func(Pending) bool) int {
	n := 0
	for _, q := range g.Pending {
		for _, p := range q {
			if match(p) {
				n++
			}
		}
	}
	return n
}

// dropStalePending clears the queue on round advance. Center cards held by
// unanswered peek decisions return to the deck bottom so none are lost.
func (g *GameState) dropStalePending() {
	for _, q := range g.Pending {
		for _, p := range q {
			if d, ok := p.(PeekKeepDiscard); ok {
				g.CenterDeck = append(g.CenterDeck, d.Card)
			}
		}
	}
	g.Pending = map[string][]Pending{}
	g.awaiting = ""
	g.yewVotes = nil
}
