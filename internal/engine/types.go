package engine

import (
	"fmt"
	"math/rand"
	"time"
)

type Team int

const (
	TeamGood Team = iota
	TeamEvil
)

func (t Team) String() string {
	switch t {
	case TeamGood:
		return "GOOD"
	case TeamEvil:
		return "EVIL"
	default:
		return "?"
	}
}

type CenterType int

const (
	CenterMilk CenterType = iota
	CenterBlood
)

func (c CenterType) String() string {
	switch c {
	case CenterMilk:
		return "MILK"
	case CenterBlood:
		return "BLOOD"
	default:
		return "?"
	}
}

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseNight
	PhaseResolution
	PhaseDay
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "LOBBY"
	case PhaseNight:
		return "NIGHT"
	case PhaseResolution:
		return "RESOLUTION"
	case PhaseDay:
		return "DAY"
	case PhaseEnded:
		return "ENDED"
	default:
		return "Unknown"
	}
}

// Canonical ingredient names the resolution dispatch knows about. The catalog
// may carry any subset; an unknown name winning a round simply has no effect.
const (
	IngredientLavender   = "lavender"   // reveal a pair from the center deck
	IngredientMandrake   = "mandrake"   // private peek, keep or discard
	IngredientFernleaf   = "fernleaf"   // role swap among contributors
	IngredientNightshade = "nightshade" // public reveal with contributor threshold
	IngredientWolfsbane  = "wolfsbane"  // forced discard; blocks primaries as secondary
	IngredientYew        = "yew"        // majority vote to poison an ingredient
	IngredientRue        = "rue"        // guess the most common hand ingredient
)

type Role struct {
	ID    string
	Name  string
	Team  Team
	Image string
}

type IngredientCard struct {
	ID    string // stable per copy, "name#index"
	Name  string
	Image string
}

type CenterCard struct {
	ID   string
	Type CenterType
}

type CardLocation int

const (
	LocationDeck CardLocation = iota
	LocationDiscard
	LocationRevealed
)

func (l CardLocation) String() string {
	switch l {
	case LocationDeck:
		return "deck"
	case LocationDiscard:
		return "discard"
	case LocationRevealed:
		return "revealed"
	default:
		return "?"
	}
}

type Player struct {
	ID              string
	Name            string
	RoleID          string
	Ready           bool
	Connected       bool
	EndedDiscussion bool
	// PoisonedRound marks the round the player must sit out; zero means
	// never poisoned.
	PoisonedRound int
	Hand          []IngredientCard
}

type TableEntry struct {
	PlayerID string
	Card     IngredientCard
	Revealed bool
}

type LogType int

const (
	LogPrimary LogType = iota
	LogSecondary
	LogInfo
)

func (t LogType) String() string {
	switch t {
	case LogPrimary:
		return "primary"
	case LogSecondary:
		return "secondary"
	case LogInfo:
		return "info"
	default:
		return "?"
	}
}

// LogEntry is an append-only record of something that happened during
// resolution. Revealed lists center cards disclosed to every player; private
// disclosures go through Knowledge instead.
type LogEntry struct {
	Type       LogType
	Ingredient string
	Message    string
	Revealed   []CenterCard
	Round      int
}

// Knowledge records that a player (or everyone, when PlayerID is empty)
// learned the type and final location of a specific center card.
type Knowledge struct {
	PlayerID string
	CardID   string
	Type     CenterType
	Location CardLocation
}

type Config struct {
	HandSize            int
	NightSeconds        int
	DaySeconds          int
	CopiesPerIngredient int
	CenterPerType       int
	EndThreshold        int
}

func DefaultConfig() Config {
	return Config{
		HandSize:            3,
		NightSeconds:        90,
		DaySeconds:          180,
		CopiesPerIngredient: 10,
		CenterPerType:       8,
		EndThreshold:        5,
	}
}

// Catalog is the externally supplied content: ingredient names and the role
// pool with team assignments. The engine never reads files.
type Catalog struct {
	Ingredients []IngredientSpec
	Roles       []Role
}

type IngredientSpec struct {
	Name  string
	Image string
}

type GameState struct {
	Config  Config
	Catalog Catalog
	Seed    int64

	Phase  Phase
	Round  int
	Expiry time.Time

	Players []Player

	// Role bookkeeping. A role id is either on exactly one player or in the
	// hero deck, never both.
	RolesByID map[string]Role
	HeroDeck  []Role

	// Ingredient piles. Draw pile and discard stay disjoint.
	Deck    []IngredientCard
	Discard []IngredientCard

	// Center piles. Index 0 of CenterDeck is the top.
	CenterDeck     []CenterCard
	CenterRevealed []CenterCard
	CenterDiscard  []CenterCard

	Table  []TableEntry
	Claims map[string][]string // card id -> claimant ids, toggled

	// Pending decisions. The head of each slice is the player's active
	// decision; later ones wait behind it.
	Pending map[string][]Pending

	Log       []LogEntry
	Knowledge []Knowledge

	// Poison state set by a completed yew vote: playing PoisonIngredient
	// during PoisonRound poisons the player for the following round.
	PoisonIngredient string
	PoisonRound      int

	Winner Team
	Tie    bool

	// Vote/guess gate holding the round in RESOLUTION until every
	// contributor has submitted.
	awaiting string
	yewVotes map[string]string

	rng *rand.Rand
}

func NewGame(cfg Config, cat Catalog, seed int64) *GameState {
	return &GameState{
		Config:    cfg,
		Catalog:   cat,
		Seed:      seed,
		Phase:     PhaseLobby,
		Claims:    map[string][]string{},
		Pending:   map[string][]Pending{},
		RolesByID: map[string]Role{},
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// AddPlayer seats a player while the room is in the lobby.
func (g *GameState) AddPlayer(id, name string) {
	if g.Phase != PhaseLobby {
		return
	}
	for _, p := range g.Players {
		if p.ID == id {
			return
		}
	}
	g.Players = append(g.Players, Player{ID: id, Name: name, Connected: true})
}

func (g *GameState) SetReady(playerID string, ready bool) {
	if g.Phase != PhaseLobby {
		return
	}
	if p := g.player(playerID); p != nil {
		p.Ready = ready
	}
}

// SetConnected tracks the player's connection. A disconnect during the night
// can drop the active count to the number of cards already on the table, in
// which case resolution begins immediately.
func (g *GameState) SetConnected(playerID string, connected bool, now time.Time) {
	p := g.player(playerID)
	if p == nil {
		return
	}
	p.Connected = connected
	if !connected && g.Phase == PhaseNight && len(g.Table) > 0 && len(g.Table) >= g.activeCount() {
		g.resolveTable(now)
	}
}

func (g *GameState) player(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// Poisoned reports whether the player sits out the current round.
func (g *GameState) Poisoned(p *Player) bool {
	return p.PoisonedRound != 0 && p.PoisonedRound == g.Round
}

// activeCount is the number of players expected to commit a card this round.
func (g *GameState) activeCount() int {
	n := 0
	for i := range g.Players {
		if g.Players[i].Connected && !g.Poisoned(&g.Players[i]) {
			n++
		}
	}
	return n
}

// RecordRune notes publicly that a private message passed between two
// players. The content never reaches the log.
func (g *GameState) RecordRune(fromID, toID string) {
	from := g.player(fromID)
	to := g.player(toID)
	if from == nil || to == nil || fromID == toID {
		return
	}
	g.logf(LogInfo, "", nil, "%s sent a rune to %s", from.Name, to.Name)
}

func (g *GameState) logf(t LogType, ingredient string, revealed []CenterCard, format string, args ...interface{}) {
	g.Log = append(g.Log, LogEntry{
		Type:       t,
		Ingredient: ingredient,
		Message:    fmt.Sprintf(format, args...),
		Revealed:   revealed,
		Round:      g.Round,
	})
}

func (g *GameState) learn(playerID string, c CenterCard, loc CardLocation) {
	g.Knowledge = append(g.Knowledge, Knowledge{
		PlayerID: playerID,
		CardID:   c.ID,
		Type:     c.Type,
		Location: loc,
	})
}
