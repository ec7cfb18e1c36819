package game

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNameTaken     = errors.New("name already in use by a connected player")
	ErrSessionLocked = errors.New("game already started, new players cannot join")
)

// Config tunes one session. The zero value gives the standard game: default
// catalog, streaks of 2 and 3, +15 completion bonus at six cards, scores
// clamped at zero, no draw-pile preview.
type Config struct {
	Seed           int64
	Catalog        []CatalogEntry
	StreakLengths  []int
	DisableBonus   bool
	BonusThreshold int
	BonusPoints    int
	AllowNegative  bool
	PreviewCount   int
}

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Catalog == nil {
		c.Catalog = DefaultCatalog()
	}
	if c.StreakLengths == nil {
		c.StreakLengths = []int{2, 3}
	}
	if c.BonusThreshold == 0 {
		c.BonusThreshold = 6
	}
	if c.BonusPoints == 0 {
		c.BonusPoints = 15
	}
	return c
}

// Player is one seat in a session. Players are soft-removed: Active goes
// false but the entry keeps its seat and accumulated score forever.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`
	Active     bool   `json:"active"`
	Connected  bool   `json:"connected"`
	Stayed     bool   `json:"stayed"`
	Busted     bool   `json:"busted"`
	TotalScore int    `json:"totalScore"`
	Hand       []Card `json:"hand"`
}

func (p *Player) eligible() bool {
	return p.Active && !p.Stayed && !p.Busted
}

func (p *Player) holds(c Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

func (p *Player) holdsNumeric(v int) bool {
	for _, h := range p.Hand {
		if n, ok := h.Numeric(); ok && n == v {
			return true
		}
	}
	return false
}

// PendingType names the action sub-phase a session can be locked in.
type PendingType string

const (
	PendingSecondChance PendingType = "second_chance"
	PendingFreeze       PendingType = "freeze"
	PendingSwap         PendingType = "swap"
	PendingTake3        PendingType = "take3"
)

// PendingAction blocks every draw/stay/pass until its actor resolves it.
// Value carries the duplicate number for a second-chance decision and the
// action card itself otherwise.
type PendingAction struct {
	Type  PendingType `json:"type"`
	Actor string      `json:"actorId"`
	Value Card        `json:"value"`
}

// RoundResult is one immutable per-player round score, emitted by EndRound
// for the caller to persist.
type RoundResult struct {
	PlayerID string
	Round    int
	Score    int
}

// Session is the aggregate for one game. All mutation goes through the named
// transition methods; the struct is not self-locking, callers serialize
// commands per session.
type Session struct {
	code string
	cfg  Config
	rng  *rand.Rand

	locked    bool
	round     int
	roundOver bool
	paused    bool

	current string // player id holding the turn, "" when none
	starter int    // seat that opens the current round

	pending     *PendingAction
	forcedDraws []string // queued take3 forced draws, player ids
	afterForced bool     // advance the turn once the forced queue drains

	players     []*Player // seat order
	drawPile    []Card
	discardPile []Card
}

// NewSession builds an empty session for a join code. The deck is built
// eagerly so pile counts are meaningful before the first draw.
func NewSession(code string, cfg Config) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		code:  code,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		round: 1,
	}
	s.ensureDeck()
	return s
}

func (s *Session) Code() string { return s.code }

func (s *Session) player(id string) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) findActiveByName(name string) *Player {
	for _, p := range s.players {
		if p.Active && strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// Join adds a player or reconnects a disconnected one. A name matching a
// connected active player is rejected outright; an unknown name is rejected
// once the session is locked.
func (s *Session) Join(name string) (*Player, error) {
	if existing := s.findActiveByName(name); existing != nil {
		if existing.Connected {
			return nil, ErrNameTaken
		}
		existing.Connected = true
		s.recomputePause()
		return existing, nil
	}
	if s.locked {
		return nil, ErrSessionLocked
	}
	p := &Player{
		ID:        uuid.NewString(),
		Name:      name,
		Seat:      len(s.players),
		Active:    true,
		Connected: true,
	}
	s.players = append(s.players, p)
	if s.current == "" && !s.roundOver {
		s.current = p.ID
	}
	s.recomputePause()
	return p, nil
}

// SetConnected flips a player's connection flag and recomputes the pause
// state. Returns false when nothing changed.
func (s *Session) SetConnected(id string, connected bool) bool {
	p := s.player(id)
	if p == nil || p.Connected == connected {
		return false
	}
	p.Connected = connected
	s.recomputePause()
	return true
}

// RemovePlayer soft-removes a player: out of rotation and name uniqueness,
// score history kept. An open pending action owned by the player is torn
// down, and the turn moves on if it was theirs.
func (s *Session) RemovePlayer(id string) bool {
	p := s.player(id)
	if p == nil || !p.Active {
		return false
	}
	p.Active = false
	p.Connected = false

	if s.pending != nil && s.pending.Actor == id {
		if s.pending.Type != PendingSecondChance {
			s.moveToDiscard(p, s.pending.Value)
		}
		s.pending = nil
	}
	s.dropForcedDraws(id)
	if s.pending == nil && len(s.forcedDraws) == 0 {
		// The take3 sequence (if any) died with this teardown; a stale
		// completion flag would steal the turn on the next resolution.
		s.afterForced = false
	}
	if s.current == id {
		// With another player's pending still open the advance waits
		// for finishResolution, so the turn moves exactly once.
		if s.pending == nil && len(s.forcedDraws) == 0 {
			s.advanceTurn()
		}
	} else if s.pending == nil && len(s.forcedDraws) == 0 && !s.anyEligible() && !s.roundOver {
		s.roundOver = true
		s.current = ""
	}
	s.recomputePause()
	return true
}

func (s *Session) anyEligible() bool {
	for _, p := range s.players {
		if p.eligible() {
			return true
		}
	}
	return false
}

// recomputePause: the session is paused while any active player is offline.
func (s *Session) recomputePause() {
	for _, p := range s.players {
		if p.Active && !p.Connected {
			s.paused = true
			return
		}
	}
	s.paused = false
}

// moveToDiscard moves one instance of a card from the hand to the discard
// pile. Missing cards are ignored so conservation cannot be broken twice.
func (s *Session) moveToDiscard(p *Player, c Card) {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			s.discardPile = append(s.discardPile, c)
			return
		}
	}
}

func (s *Session) dropForcedDraws(id string) {
	if len(s.forcedDraws) == 0 {
		return
	}
	kept := s.forcedDraws[:0]
	for _, fid := range s.forcedDraws {
		if fid != id {
			kept = append(kept, fid)
		}
	}
	s.forcedDraws = kept
	if len(s.forcedDraws) == 0 {
		s.forcedDraws = nil
	}
}
