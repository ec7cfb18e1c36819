package game

import "testing"

func discardCount(s *Session, c Card) int {
	n := 0
	for _, d := range s.discardPile {
		if d == c {
			n++
		}
	}
	return n
}

func TestSecondChanceUse(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1 := ps[0]
	s.drawPile = []Card{"5", CardSecondChance, "5", "9"}
	s.discardPile = nil

	s.Draw(p1.ID) // 5
	s.Draw(p1.ID) // second chance, kept silently? no: triggers nothing, it is not a pending card
	if s.pending != nil {
		t.Fatalf("second chance card must not open a pending action: %+v", s.pending)
	}
	s.Draw(p1.ID) // duplicate 5 with a second chance in hand
	if s.pending == nil || s.pending.Type != PendingSecondChance || s.pending.Actor != p1.ID {
		t.Fatalf("expected second-chance pending, got %+v", s.pending)
	}
	if s.Draw(p1.ID) {
		t.Fatal("draw must be blocked while a pending action is open")
	}
	if s.Stay(p1.ID) {
		t.Fatal("stay must be blocked while a pending action is open")
	}

	if !s.UseSecondChance(p1.ID, true) {
		t.Fatal("use rejected")
	}
	if p1.Busted {
		t.Fatal("using second chance must avoid the bust")
	}
	if got := len(p1.Hand); got != 1 {
		t.Fatalf("hand after use: %v", p1.Hand)
	}
	if discardCount(s, "5") != 1 || discardCount(s, CardSecondChance) != 1 {
		t.Fatalf("discard must hold one 5 and one second chance: %v", s.discardPile)
	}
	if s.current != p1.ID {
		t.Fatal("turn must stay with the actor after using second chance")
	}
	if s.pending != nil {
		t.Fatal("pending must clear")
	}
}

func TestSecondChanceDecline(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1, p2 := ps[0], ps[1]
	s.drawPile = []Card{"5", CardSecondChance, "5", "9"}
	s.discardPile = nil

	s.Draw(p1.ID)
	s.Draw(p1.ID)
	s.Draw(p1.ID)
	if !s.UseSecondChance(p1.ID, false) {
		t.Fatal("decline rejected")
	}
	if !p1.Stayed || !p1.Busted {
		t.Fatal("declining must bust the actor")
	}
	if s.current != p2.ID {
		t.Fatalf("turn must advance after the bust, got %q", s.current)
	}
}

func TestFreezeTarget(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1, p2 := ps[0], ps[1]
	s.drawPile = []Card{CardFreeze, "9", "1"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if s.pending == nil || s.pending.Type != PendingFreeze {
		t.Fatalf("expected freeze pending, got %+v", s.pending)
	}
	if s.Draw(p2.ID) {
		t.Fatal("other players must be blocked during a pending action")
	}
	if s.ResolveFreeze(p2.ID, p2.ID) {
		t.Fatal("only the actor may resolve the pending action")
	}
	if !s.ResolveFreeze(p1.ID, p2.ID) {
		t.Fatal("resolve rejected")
	}
	if !p2.Stayed {
		t.Fatal("freeze must mark the target stayed")
	}
	if discardCount(s, CardFreeze) != 1 || len(p1.Hand) != 0 {
		t.Fatal("freeze card must move from hand to discard")
	}
	// Bob is frozen, so the turn wraps back to Alice.
	if s.current != p1.ID {
		t.Fatalf("turn should return to Alice, got %q", s.current)
	}
}

func TestFreezeSelfEndsRoundWhenLastEligible(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1 := ps[0]
	ps[1].Stayed = true
	s.drawPile = []Card{CardFreeze, "1"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.ResolveFreeze(p1.ID, p1.ID) {
		t.Fatal("self-freeze rejected")
	}
	if !s.roundOver {
		t.Fatal("freezing the last eligible player must end the round")
	}
}

func TestSwapExchangesWholeHands(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1, p2 := ps[0], ps[1]
	p2.Hand = []Card{"7", CardDouble}
	s.drawPile = []Card{"3", CardSwap, "9"}
	s.discardPile = nil

	s.Draw(p1.ID) // 3
	s.Draw(p1.ID) // swap
	if !s.ResolveSwap(p1.ID, p2.ID) {
		t.Fatal("swap rejected")
	}
	if len(p1.Hand) != 2 || p1.Hand[0] != "7" || p1.Hand[1] != CardDouble {
		t.Fatalf("actor hand after swap: %v", p1.Hand)
	}
	if len(p2.Hand) != 1 || p2.Hand[0] != "3" {
		t.Fatalf("target hand after swap: %v", p2.Hand)
	}
	if discardCount(s, CardSwap) != 1 {
		t.Fatal("swap card must go to discard")
	}
	if s.current != p2.ID {
		t.Fatalf("turn must advance after swap, got %q", s.current)
	}
}

func TestSwapSelfIsNoopBeyondDiscard(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1 := ps[0]
	s.drawPile = []Card{"3", CardSwap, "9"}
	s.discardPile = nil

	s.Draw(p1.ID)
	s.Draw(p1.ID)
	if !s.ResolveSwap(p1.ID, p1.ID) {
		t.Fatal("self-swap rejected")
	}
	if len(p1.Hand) != 1 || p1.Hand[0] != "3" {
		t.Fatalf("self-swap must keep the hand: %v", p1.Hand)
	}
}

func TestTake3ForcesThreeDraws(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1, p2 := ps[0], ps[1]
	s.drawPile = []Card{CardTake3, "2", "6", "9", "12"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.ResolveTake3(p1.ID, p2.ID) {
		t.Fatal("take3 rejected")
	}
	if len(p2.Hand) != 3 {
		t.Fatalf("target must draw three cards, hand: %v", p2.Hand)
	}
	if discardCount(s, CardTake3) != 1 {
		t.Fatal("take3 card must go to discard")
	}
	if s.current != p2.ID {
		t.Fatalf("turn must advance once the forced draws complete, got %q", s.current)
	}
	if len(s.forcedDraws) != 0 {
		t.Fatalf("forced-draw queue must drain, got %v", s.forcedDraws)
	}
}

func TestTake3BustMidQueueDropsRemainingDraws(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1, p2 := ps[0], ps[1]
	s.drawPile = []Card{CardTake3, "6", "6", "9", "12"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.ResolveTake3(p1.ID, p2.ID) {
		t.Fatal("take3 rejected")
	}
	if !p2.Busted || !p2.Stayed {
		t.Fatal("duplicate on a forced draw must bust the target")
	}
	// The second forced draw busted Bob; the third must not happen.
	if len(p2.Hand) != 2 {
		t.Fatalf("target hand after bust: %v", p2.Hand)
	}
	if s.drawPile[0] != "9" {
		t.Fatalf("remaining forced draw leaked a card, top is %q", s.drawPile[0])
	}
	if !s.roundOver && s.current != p1.ID {
		t.Fatalf("turn must return to Alice, got %q", s.current)
	}
}

func TestTake3NestedSecondChance(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1, p2 := ps[0], ps[1]
	p2.Hand = []Card{CardSecondChance}
	s.drawPile = []Card{CardTake3, "6", "6", "9", "12"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.ResolveTake3(p1.ID, p2.ID) {
		t.Fatal("take3 rejected")
	}
	if s.pending == nil || s.pending.Type != PendingSecondChance || s.pending.Actor != p2.ID {
		t.Fatalf("expected nested second-chance pending for Bob, got %+v", s.pending)
	}
	if len(s.forcedDraws) != 1 {
		t.Fatalf("one forced draw must stay queued, got %v", s.forcedDraws)
	}

	if !s.UseSecondChance(p2.ID, true) {
		t.Fatal("nested use rejected")
	}
	// Queue resumed: Bob drew the remaining card, then the turn advanced
	// because the take3 sequence completed.
	if len(s.forcedDraws) != 0 {
		t.Fatalf("queue must drain after the nested resolution, got %v", s.forcedDraws)
	}
	if got := len(p2.Hand); got != 2 {
		t.Fatalf("target hand after resume: %v", p2.Hand)
	}
	if s.current != p2.ID {
		t.Fatalf("turn must advance to Bob after take3 completes, got %q", s.current)
	}
}

func TestTake3NestedActionCard(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1, p2 := ps[0], ps[1]
	s.drawPile = []Card{CardTake3, "6", CardFreeze, "9", "12"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.ResolveTake3(p1.ID, p2.ID) {
		t.Fatal("take3 rejected")
	}
	if s.pending == nil || s.pending.Type != PendingFreeze || s.pending.Actor != p2.ID {
		t.Fatalf("expected nested freeze pending for Bob, got %+v", s.pending)
	}
	// Bob freezes Alice; his own remaining forced draw still happens.
	if !s.ResolveFreeze(p2.ID, p1.ID) {
		t.Fatal("nested freeze rejected")
	}
	if !ps[0].Stayed {
		t.Fatal("freeze target must be stayed")
	}
	if got := len(p2.Hand); got != 2 {
		t.Fatalf("target hand after resume: %v", p2.Hand)
	}
	if !s.roundOver && s.current != p2.ID {
		t.Fatalf("turn must land on Bob, got %q", s.current)
	}
}

func TestSecondChanceKeepsTurnAfterTake3TargetRemoved(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob", "Carol")
	p1, p2 := ps[0], ps[1]
	s.drawPile = []Card{CardTake3, "6", CardFreeze, CardSecondChance, "5", "5", "9"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.ResolveTake3(p1.ID, p2.ID) {
		t.Fatal("take3 rejected")
	}
	if s.pending == nil || s.pending.Type != PendingFreeze || s.pending.Actor != p2.ID {
		t.Fatalf("precondition: nested freeze pending for Bob, got %+v", s.pending)
	}

	// Bob leaves with his nested pending open; the take3 sequence dies
	// with him and Alice simply keeps her turn.
	if !s.RemovePlayer(p2.ID) {
		t.Fatal("remove rejected")
	}
	if s.pending != nil || len(s.forcedDraws) != 0 {
		t.Fatalf("teardown must clear pending and queue: %+v %v", s.pending, s.forcedDraws)
	}
	if s.current != p1.ID {
		t.Fatalf("turn must stay with Alice, got %q", s.current)
	}

	// Alice plays on into a second-chance decision. Using it must keep
	// the turn with her; a leftover take3 completion flag used to hand
	// it to Carol.
	s.Draw(p1.ID) // second chance
	s.Draw(p1.ID) // 5
	s.Draw(p1.ID) // duplicate 5
	if s.pending == nil || s.pending.Type != PendingSecondChance {
		t.Fatalf("precondition: second-chance pending, got %+v", s.pending)
	}
	if !s.UseSecondChance(p1.ID, true) {
		t.Fatal("use rejected")
	}
	if p1.Busted {
		t.Fatal("using second chance must avoid the bust")
	}
	if s.current != p1.ID {
		t.Fatalf("turn must stay with Alice after using second chance, got %q", s.current)
	}
}

func TestRemovingCurrentPlayerDefersAdvanceToResolution(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob", "Carol")
	p1, p2, p3 := ps[0], ps[1], ps[2]
	s.drawPile = []Card{CardTake3, "6", CardFreeze, "9", "12"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.ResolveTake3(p1.ID, p2.ID) {
		t.Fatal("take3 rejected")
	}
	if s.pending == nil || s.pending.Actor != p2.ID {
		t.Fatalf("precondition: nested pending for Bob, got %+v", s.pending)
	}

	// Alice (the turn holder) is removed while Bob's pending is open:
	// the advance waits for the resolution instead of firing twice.
	if !s.RemovePlayer(p1.ID) {
		t.Fatal("remove rejected")
	}
	if s.pending == nil || s.pending.Actor != p2.ID {
		t.Fatal("removal must leave another player's pending open")
	}

	if !s.ResolveFreeze(p2.ID, p3.ID) {
		t.Fatal("nested freeze rejected")
	}
	if !p3.Stayed {
		t.Fatal("freeze target must be stayed")
	}
	if got := len(p2.Hand); got != 2 {
		t.Fatalf("Bob's remaining forced draw must happen, hand: %v", p2.Hand)
	}
	// One advance total: Bob is the next eligible seat after Alice and
	// must not be skipped.
	if s.current != p2.ID {
		t.Fatalf("turn must land on Bob, got %q", s.current)
	}
}

func TestCancelActionReturnsCardToDiscard(t *testing.T) {
	s, ps := newTestSession(t, "Alice", "Bob")
	p1 := ps[0]
	s.drawPile = []Card{CardSwap, "9", "1"}
	s.discardPile = nil

	s.Draw(p1.ID)
	if !s.CancelAction(p1.ID) {
		t.Fatal("cancel rejected")
	}
	if s.pending != nil {
		t.Fatal("pending must clear on cancel")
	}
	if discardCount(s, CardSwap) != 1 || len(p1.Hand) != 0 {
		t.Fatal("cancelled action card must move to discard")
	}
	if s.current != p1.ID {
		t.Fatal("actor keeps the turn after cancelling")
	}
}
