package game

// UseSecondChance resolves a second-chance decision. Using it discards the
// duplicate just drawn plus one second-chance card and the actor keeps the
// turn; declining is a bust.
func (s *Session) UseSecondChance(actor string, use bool) bool {
	if s.paused || s.pending == nil || s.pending.Type != PendingSecondChance || s.pending.Actor != actor {
		return false
	}
	p := s.player(actor)
	if p == nil {
		return false
	}
	dup := s.pending.Value
	s.pending = nil

	if use {
		s.moveToDiscard(p, dup)
		s.moveToDiscard(p, CardSecondChance)
		s.finishResolution(false)
		return true
	}
	p.Stayed = true
	p.Busted = true
	s.dropForcedDraws(actor)
	s.finishResolution(true)
	return true
}

// ResolveFreeze forces the target to stay immediately, whatever their hand
// looks like. The actor may freeze themselves.
func (s *Session) ResolveFreeze(actor, target string) bool {
	if s.paused || s.pending == nil || s.pending.Type != PendingFreeze || s.pending.Actor != actor {
		return false
	}
	p := s.player(actor)
	t := s.player(target)
	if p == nil || t == nil || !t.Active {
		return false
	}
	s.moveToDiscard(p, CardFreeze)
	s.pending = nil
	t.Stayed = true
	s.dropForcedDraws(target)
	s.finishResolution(true)
	return true
}

// ResolveSwap exchanges the entire hands of actor and target, modifiers
// included. A self-swap just burns the card.
func (s *Session) ResolveSwap(actor, target string) bool {
	if s.paused || s.pending == nil || s.pending.Type != PendingSwap || s.pending.Actor != actor {
		return false
	}
	p := s.player(actor)
	t := s.player(target)
	if p == nil || t == nil || !t.Active {
		return false
	}
	s.moveToDiscard(p, CardSwap)
	s.pending = nil
	if p != t {
		p.Hand, t.Hand = t.Hand, p.Hand
	}
	s.finishResolution(true)
	return true
}

// ResolveTake3 queues three forced draws for the target. The queue is
// drained here unless one of the draws opens a nested pending action; in
// that case draining resumes when the nested action resolves, and the turn
// advances only once the queue is empty.
func (s *Session) ResolveTake3(actor, target string) bool {
	if s.paused || s.pending == nil || s.pending.Type != PendingTake3 || s.pending.Actor != actor {
		return false
	}
	p := s.player(actor)
	t := s.player(target)
	if p == nil || t == nil || !t.eligible() {
		return false
	}
	s.moveToDiscard(p, CardTake3)
	s.pending = nil
	s.forcedDraws = append(s.forcedDraws, target, target, target)
	s.afterForced = true
	s.finishResolution(false)
	return true
}

// CancelAction lets the actor abandon an open freeze/swap/take3 without
// resolving it: the card goes to discard and the actor keeps the turn.
// Second-chance decisions cannot be cancelled.
func (s *Session) CancelAction(actor string) bool {
	if s.paused || s.pending == nil || s.pending.Actor != actor || s.pending.Type == PendingSecondChance {
		return false
	}
	p := s.player(actor)
	if p == nil {
		return false
	}
	s.moveToDiscard(p, s.pending.Value)
	s.pending = nil
	s.finishResolution(false)
	return true
}
