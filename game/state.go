package game

// State is the full serializable form of a session, used both as the
// persistence codec (stored as a JSON column) and as the rollback point when
// a command fails to persist.
type State struct {
	Code        string         `json:"code"`
	Locked      bool           `json:"locked"`
	Round       int            `json:"round"`
	RoundOver   bool           `json:"roundOver"`
	Paused      bool           `json:"paused"`
	Current     string         `json:"current"`
	Starter     int            `json:"starter"`
	Pending     *PendingAction `json:"pending,omitempty"`
	ForcedDraws []string       `json:"forcedDraws,omitempty"`
	AfterForced bool           `json:"afterForced,omitempty"`
	Players     []Player       `json:"players"`
	DrawPile    []Card         `json:"drawPile"`
	DiscardPile []Card         `json:"discardPile"`
}

// State deep-copies the session into its serializable form.
func (s *Session) State() *State {
	st := &State{
		Code:        s.code,
		Locked:      s.locked,
		Round:       s.round,
		RoundOver:   s.roundOver,
		Paused:      s.paused,
		Current:     s.current,
		Starter:     s.starter,
		AfterForced: s.afterForced,
		ForcedDraws: append([]string(nil), s.forcedDraws...),
		DrawPile:    append([]Card(nil), s.drawPile...),
		DiscardPile: append([]Card(nil), s.discardPile...),
	}
	if s.pending != nil {
		p := *s.pending
		st.Pending = &p
	}
	for _, p := range s.players {
		cp := *p
		cp.Hand = append([]Card(nil), p.Hand...)
		st.Players = append(st.Players, cp)
	}
	return st
}

// Restore overwrites the session's state in place. The RNG is left alone:
// after a crash-restart the shuffle sequence diverges, which is fine, the
// piles themselves are restored exactly.
func (s *Session) Restore(st *State) {
	s.locked = st.Locked
	s.round = st.Round
	s.roundOver = st.RoundOver
	s.paused = st.Paused
	s.current = st.Current
	s.starter = st.Starter
	s.afterForced = st.AfterForced
	s.forcedDraws = append([]string(nil), st.ForcedDraws...)
	s.drawPile = append([]Card(nil), st.DrawPile...)
	s.discardPile = append([]Card(nil), st.DiscardPile...)
	s.pending = nil
	if st.Pending != nil {
		p := *st.Pending
		s.pending = &p
	}
	s.players = s.players[:0]
	for i := range st.Players {
		cp := st.Players[i]
		cp.Hand = append([]Card(nil), st.Players[i].Hand...)
		s.players = append(s.players, &cp)
	}
	if len(s.forcedDraws) == 0 {
		s.forcedDraws = nil
	}
}

// RestoreSession rebuilds a live session from persisted state.
func RestoreSession(cfg Config, st *State) *Session {
	s := NewSession(st.Code, cfg)
	s.Restore(st)
	return s
}
