package game

// SnapshotPlayer is one roster entry, in seat order.
type SnapshotPlayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`
	Active     bool   `json:"active"`
	Connected  bool   `json:"connected"`
	Stayed     bool   `json:"stayed"`
	Busted     bool   `json:"busted"`
	TotalScore int    `json:"totalScore"`
}

// SnapshotHandCard is one card of the flattened hand list.
type SnapshotHandCard struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
}

// Snapshot is the full state payload broadcast to every participant after
// each mutating command. Clients resynchronize from it; there is no diff
// protocol.
type Snapshot struct {
	Code         string             `json:"code"`
	Locked       bool               `json:"locked"`
	Round        int                `json:"round"`
	RoundOver    bool               `json:"roundOver"`
	Paused       bool               `json:"paused"`
	CurrentTurn  string             `json:"currentTurn,omitempty"`
	Pending      *PendingAction     `json:"pending,omitempty"`
	Players      []SnapshotPlayer   `json:"players"`
	Hands        []SnapshotHandCard `json:"hands"`
	DrawCount    int                `json:"drawCount"`
	DiscardCount int                `json:"discardCount"`
	NextCards    []Card             `json:"nextCards,omitempty"`
	Disconnected []string           `json:"disconnected,omitempty"`
}

// Snapshot deep-copies the observable session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Code:         s.code,
		Locked:       s.locked,
		Round:        s.round,
		RoundOver:    s.roundOver,
		Paused:       s.paused,
		CurrentTurn:  s.current,
		DrawCount:    len(s.drawPile),
		DiscardCount: len(s.discardPile),
		Players:      make([]SnapshotPlayer, 0, len(s.players)),
		Hands:        []SnapshotHandCard{},
	}
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, SnapshotPlayer{
			ID:         p.ID,
			Name:       p.Name,
			Seat:       p.Seat,
			Active:     p.Active,
			Connected:  p.Connected,
			Stayed:     p.Stayed,
			Busted:     p.Busted,
			TotalScore: p.TotalScore,
		})
		for _, c := range p.Hand {
			snap.Hands = append(snap.Hands, SnapshotHandCard{PlayerID: p.ID, Card: c})
		}
		if p.Active && !p.Connected {
			snap.Disconnected = append(snap.Disconnected, p.ID)
		}
	}
	if n := s.cfg.PreviewCount; n > 0 {
		if n > len(s.drawPile) {
			n = len(s.drawPile)
		}
		snap.NextCards = append([]Card(nil), s.drawPile[:n]...)
	}
	return snap
}
