package server

import (
	"time"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

type RoleView struct {
	Name  string `json:"name"`
	Team  string `json:"team"`
	Image string `json:"image,omitempty"`
}

type IngredientView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type CenterCardView struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"` // empty while the card is hidden
}

type PlayerView struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Ready           bool             `json:"ready"`
	Connected       bool             `json:"connected"`
	EndedDiscussion bool             `json:"endedDiscussion"`
	Poisoned        bool             `json:"poisoned"`
	HandCount       int              `json:"handCount"`
	Hand            []IngredientView `json:"hand,omitempty"` // viewer's own seat only
	Role            *RoleView        `json:"role,omitempty"` // viewer's own seat only
}

type TableEntryView struct {
	PlayerID string          `json:"playerId"`
	Revealed bool            `json:"revealed"`
	Card     *IngredientView `json:"card,omitempty"` // only once revealed
}

type LogEntryView struct {
	Type       string           `json:"type"`
	Ingredient string           `json:"ingredient,omitempty"`
	Message    string           `json:"message"`
	Revealed   []CenterCardView `json:"revealed,omitempty"`
	Round      int              `json:"round"`
}

// PendingView describes the viewer's own active decision; nobody else ever
// receives it.
type PendingView struct {
	Kind       string          `json:"kind"`
	CenterCard *CenterCardView `json:"centerCard,omitempty"`
	Card       *IngredientView `json:"card,omitempty"`
	Role       *RoleView       `json:"role,omitempty"`
	Options    []string        `json:"options,omitempty"`
}

type RoomView struct {
	Code               string              `json:"code"`
	Phase              string              `json:"phase"`
	Round              int                 `json:"round"`
	ExpiresAt          *time.Time          `json:"expiresAt,omitempty"`
	Players            []PlayerView        `json:"players"`
	CenterDeckCount    int                 `json:"centerDeckCount"`
	CenterDiscardCount int                 `json:"centerDiscardCount"`
	CenterRevealed     []CenterCardView    `json:"centerRevealed"`
	CenterDeck         []CenterCardView    `json:"centerDeck,omitempty"`    // ENDED only
	CenterDiscard      []CenterCardView    `json:"centerDiscard,omitempty"` // ENDED only
	Table              []TableEntryView    `json:"table"`
	Claims             map[string][]string `json:"claims"`
	Log                []LogEntryView      `json:"log"`
	Pending            *PendingView        `json:"pending,omitempty"`
	Winner             string              `json:"winner,omitempty"`
	Tie                bool                `json:"tie,omitempty"`
}

// BuildRoomView projects the game for one viewer. An empty viewerID builds
// the spectator view: no hand, no role, no pending decision.
func BuildRoomView(code string, g *engine.GameState, viewerID string) *RoomView {
	ended := g.Phase == engine.PhaseEnded

	players := make([]PlayerView, 0, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		pv := PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			Ready:           p.Ready,
			Connected:       p.Connected,
			EndedDiscussion: p.EndedDiscussion,
			Poisoned:        g.Poisoned(p),
			HandCount:       len(p.Hand),
		}
		if p.ID == viewerID {
			for _, c := range p.Hand {
				pv.Hand = append(pv.Hand, ingredientView(c))
			}
			if role, ok := g.RolesByID[p.RoleID]; ok && p.RoleID != "" {
				rv := roleView(role)
				pv.Role = &rv
			}
		}
		players = append(players, pv)
	}

	table := make([]TableEntryView, 0, len(g.Table))
	for _, e := range g.Table {
		tv := TableEntryView{PlayerID: e.PlayerID, Revealed: e.Revealed}
		if e.Revealed {
			cv := ingredientView(e.Card)
			tv.Card = &cv
		}
		table = append(table, tv)
	}

	log := make([]LogEntryView, 0, len(g.Log))
	for _, e := range g.Log {
		log = append(log, logEntryView(e))
	}

	view := &RoomView{
		Code:               code,
		Phase:              g.Phase.String(),
		Round:              g.Round,
		Players:            players,
		CenterDeckCount:    len(g.CenterDeck),
		CenterDiscardCount: len(g.CenterDiscard),
		CenterRevealed:     centerViews(g.CenterRevealed, true),
		Table:              table,
		Claims:             g.Claims,
		Log:                log,
	}
	if !g.Expiry.IsZero() {
		t := g.Expiry
		view.ExpiresAt = &t
	}
	if ended {
		view.CenterDeck = centerViews(g.CenterDeck, true)
		view.CenterDiscard = centerViews(g.CenterDiscard, true)
		if g.Tie {
			view.Tie = true
		} else {
			view.Winner = g.Winner.String()
		}
	}
	if viewerID != "" {
		if p, ok := g.ActivePending(viewerID); ok {
			view.Pending = pendingView(p)
		}
	}
	return view
}

func pendingView(p engine.Pending) *PendingView {
	switch d := p.(type) {
	case engine.PeekKeepDiscard:
		cv := centerView(d.Card, true)
		return &PendingView{Kind: "peek_keep_discard", CenterCard: &cv}
	case engine.TopCardNotice:
		cv := centerView(d.Card, true)
		return &PendingView{Kind: "top_card", CenterCard: &cv}
	case engine.RoleSwapNotice:
		rv := roleView(d.Role)
		return &PendingView{Kind: "role_swap", Role: &rv}
	case engine.RolePeekNotice:
		rv := roleView(d.Role)
		return &PendingView{Kind: "role_peek", Role: &rv}
	case engine.ForcedDiscardNotice:
		cv := ingredientView(d.Card)
		return &PendingView{Kind: "forced_discard", Card: &cv}
	case engine.ForcedPlayNotice:
		cv := ingredientView(d.Card)
		return &PendingView{Kind: "forced_play", Card: &cv}
	case engine.PoisonVote:
		return &PendingView{Kind: "poison_vote", Options: d.Options}
	case engine.CommonGuess:
		return &PendingView{Kind: "common_guess"}
	default:
		return nil
	}
}

func ingredientView(c engine.IngredientCard) IngredientView {
	return IngredientView{ID: c.ID, Name: c.Name, Image: c.Image}
}

func roleView(r engine.Role) RoleView {
	return RoleView{Name: r.Name, Team: r.Team.String(), Image: r.Image}
}

func centerView(c engine.CenterCard, shown bool) CenterCardView {
	v := CenterCardView{ID: c.ID}
	if shown {
		v.Type = c.Type.String()
	}
	return v
}

func centerViews(cards []engine.CenterCard, shown bool) []CenterCardView {
	out := make([]CenterCardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, centerView(c, shown))
	}
	return out
}

func logEntryView(e engine.LogEntry) LogEntryView {
	return LogEntryView{
		Type:       e.Type.String(),
		Ingredient: e.Ingredient,
		Message:    e.Message,
		Revealed:   centerViews(e.Revealed, true),
		Round:      e.Round,
	}
}
