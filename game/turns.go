package game

// drawOutcome classifies what a single draw did to the drawing player.
type drawOutcome int

const (
	drawNone drawOutcome = iota // no card available anywhere
	drawKept                    // card added to hand, turn unchanged
	drawBust                    // duplicate number, player busted
	drawPending                 // a pending action opened
)

// Draw pops the top card for the current actor. Wrong actor, wrong state or
// a paused session is a silent no-op. The session locks against brand-new
// joins on the first card actually produced.
func (s *Session) Draw(actor string) bool {
	if s.paused || s.roundOver || s.pending != nil || s.current != actor {
		return false
	}
	p := s.player(actor)
	if p == nil || !p.eligible() {
		return false
	}
	outcome := s.performDraw(p)
	if outcome == drawNone {
		return false
	}
	s.locked = true
	if outcome == drawBust {
		s.advanceTurn()
	}
	return true
}

// performDraw applies one draw to a player, shared by regular turns and
// take3 forced draws.
func (s *Session) performDraw(p *Player) drawOutcome {
	c, ok := s.drawTop()
	if !ok {
		return drawNone
	}
	p.Hand = append(p.Hand, c)

	if v, numeric := c.Numeric(); numeric {
		// Duplicate check against the hand as it was before this card.
		count := 0
		for _, h := range p.Hand {
			if n, isNum := h.Numeric(); isNum && n == v {
				count++
			}
		}
		if count < 2 {
			return drawKept
		}
		if p.holds(CardSecondChance) {
			s.pending = &PendingAction{Type: PendingSecondChance, Actor: p.ID, Value: c}
			return drawPending
		}
		p.Stayed = true
		p.Busted = true
		return drawBust
	}

	if c.TriggersPending() {
		s.pending = &PendingAction{Type: PendingType(c), Actor: p.ID, Value: c}
		return drawPending
	}
	// Score modifier, kept silently.
	return drawKept
}

// Stay banks the current actor's hand for the round and moves the turn on.
func (s *Session) Stay(actor string) bool {
	if s.paused || s.roundOver || s.pending != nil || s.current != actor {
		return false
	}
	p := s.player(actor)
	if p == nil || !p.eligible() {
		return false
	}
	p.Stayed = true
	s.advanceTurn()
	return true
}

// Pass skips the actor's turn without marking them stayed; rotation will
// come back to them later in the same round.
func (s *Session) Pass(actor string) bool {
	if s.paused || s.roundOver || s.pending != nil || s.current != actor {
		return false
	}
	p := s.player(actor)
	if p == nil || !p.eligible() {
		return false
	}
	s.advanceTurn()
	return true
}

// advanceTurn scans the fixed seat order starting after the current pointer,
// wrapping, and hands the turn to the first active, not-stayed, not-busted
// player. With nobody eligible the round is over and the pointer clears.
func (s *Session) advanceTurn() {
	n := len(s.players)
	if n == 0 {
		s.current = ""
		return
	}
	start := s.starter
	if cur := s.player(s.current); cur != nil {
		start = cur.Seat
	}
	for i := 1; i <= n; i++ {
		p := s.players[(start+i)%n]
		if p.eligible() {
			s.current = p.ID
			return
		}
	}
	s.roundOver = true
	s.current = ""
}

// EndRound scores every active player, persists nothing itself (results go
// back to the caller), resets the table for the next round and hands the
// first turn to the rotated round starter.
func (s *Session) EndRound() ([]RoundResult, bool) {
	if s.paused || !s.roundOver {
		return nil, false
	}
	var results []RoundResult
	for _, p := range s.players {
		if !p.Active {
			continue
		}
		score := ComputeHandScore(p.Hand, p.Busted, s.cfg)
		p.TotalScore += score
		results = append(results, RoundResult{PlayerID: p.ID, Round: s.round, Score: score})
	}

	s.round++
	for _, p := range s.players {
		p.Stayed = false
		p.Busted = false
	}
	s.starter = s.nextActiveSeat(s.starter)
	s.drawPile = nil
	s.rebuildDeck()
	s.roundOver = false
	s.pending = nil
	s.forcedDraws = nil
	s.afterForced = false

	s.current = ""
	if p := s.players[s.starter]; p.eligible() {
		s.current = p.ID
	} else {
		s.advanceTurn()
	}
	return results, true
}

// nextActiveSeat rotates one seat forward, skipping removed players.
func (s *Session) nextActiveSeat(seat int) int {
	n := len(s.players)
	if n == 0 {
		return 0
	}
	for i := 1; i <= n; i++ {
		idx := (seat + i) % n
		if s.players[idx].Active {
			return idx
		}
	}
	return seat
}

// drainForcedDraws performs queued take3 draws until the queue empties, a
// nested pending action suspends it, or the round ends. A bust drops the
// busted player's remaining queued draws.
func (s *Session) drainForcedDraws() {
	for len(s.forcedDraws) > 0 && s.pending == nil && !s.roundOver {
		id := s.forcedDraws[0]
		s.forcedDraws = s.forcedDraws[1:]
		p := s.player(id)
		if p == nil || !p.eligible() {
			continue
		}
		if s.performDraw(p) == drawBust {
			s.dropForcedDraws(id)
		}
	}
	if len(s.forcedDraws) == 0 {
		s.forcedDraws = nil
	}
}

// finishResolution runs after every pending-action resolution: drain any
// queued forced draws, then advance the turn unless the resolution keeps it
// with the actor (second-chance use) and no take3 completion demands it.
func (s *Session) finishResolution(advance bool) {
	s.drainForcedDraws()
	if s.pending != nil || len(s.forcedDraws) > 0 {
		return
	}
	if s.afterForced {
		advance = true
		s.afterForced = false
	}
	// The turn holder may have been removed while the pending was open;
	// the pointer parked on them, so the deferred advance happens here.
	if cur := s.player(s.current); cur == nil || !cur.eligible() {
		advance = true
	}
	if advance && !s.roundOver {
		s.advanceTurn()
	}
}
