package game

import "math/rand"

// maxActionCards caps how many action cards a single shuffle weaves into the
// numeric backbone; any surplus goes to the bottom of the pile untouched.
const maxActionCards = 14

// actionZone is a contiguous slice of the numeric backbone, expressed as
// fractions of its length, that receives one clustered batch of action cards.
type actionZone struct {
	lo, hi float64
}

var actionZones = []actionZone{
	{0.10, 0.30},
	{0.30, 0.65},
	{0.65, 0.80},
	{0.80, 1.00},
}

// buildTemplate expands the catalog into the flat card multiset the deck is
// built from.
func buildTemplate(catalog []CatalogEntry) []Card {
	var cards []Card
	for _, e := range catalog {
		for i := 0; i < e.Count; i++ {
			cards = append(cards, e.Card)
		}
	}
	return cards
}

// shuffleDeck produces the hybrid ordering: numeric and action cards are
// permuted independently, short runs of equal numbers are forced into the
// numeric backbone, and the action cards are reinserted in clustered bursts
// rather than spread uniformly.
func shuffleDeck(rng *rand.Rand, cards []Card, streaks []int) []Card {
	var numeric, actions []Card
	for _, c := range cards {
		if c.IsAction() {
			actions = append(actions, c)
		} else {
			numeric = append(numeric, c)
		}
	}

	rng.Shuffle(len(numeric), func(i, j int) { numeric[i], numeric[j] = numeric[j], numeric[i] })
	rng.Shuffle(len(actions), func(i, j int) { actions[i], actions[j] = actions[j], actions[i] })

	for _, l := range streaks {
		forceStreak(numeric, l)
	}

	surplus := []Card(nil)
	if len(actions) > maxActionCards {
		surplus = actions[maxActionCards:]
		actions = actions[:maxActionCards]
	}

	deck := clusterActions(rng, numeric, actions)
	return append(deck, surplus...)
}

// forceStreak scans for the first window of the given length that is not
// already a run of equal values, then swaps a later copy of the window's
// starting value into its last slot. Best effort: if no later copy exists
// the deck is left alone.
func forceStreak(cards []Card, length int) {
	for start := 0; start+length <= len(cards); start++ {
		window := cards[start : start+length]
		if isRun(window) {
			continue
		}
		v := window[0]
		for j := start + length; j < len(cards); j++ {
			if cards[j] == v {
				cards[start+length-1], cards[j] = cards[j], cards[start+length-1]
				return
			}
		}
		return
	}
}

func isRun(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if cards[i] != cards[0] {
			return false
		}
	}
	return true
}

// clusterActions reinserts the action cards into the numeric backbone zone by
// zone: each zone gets a batch of 1-3 cards at one random position inside it,
// cycling over the zones until nothing is left. The first 10% of the backbone
// never receives an action card.
func clusterActions(rng *rand.Rand, backbone, actions []Card) []Card {
	n := len(backbone)
	if n == 0 {
		return append([]Card(nil), actions...)
	}
	deck := make([]Card, 0, n+len(actions))
	deck = append(deck, backbone...)

	offset := 0
	for len(actions) > 0 {
		for _, z := range actionZones {
			if len(actions) == 0 {
				break
			}
			batch := 1 + rng.Intn(3)
			if batch > len(actions) {
				batch = len(actions)
			}
			lo := int(z.lo * float64(n))
			hi := int(z.hi * float64(n))
			pos := lo
			if hi > lo {
				pos = lo + rng.Intn(hi-lo)
			}
			pos += offset
			if pos > len(deck) {
				pos = len(deck)
			}
			deck = append(deck[:pos], append(append([]Card(nil), actions[:batch]...), deck[pos:]...)...)
			actions = actions[batch:]
			offset += batch
		}
	}
	return deck
}

// ensureDeck rebuilds the draw pile from the template when it is empty.
// Rebuilding is a full reset: discard pile and every hand are cleared, so
// this only runs at game or round boundaries.
func (s *Session) ensureDeck() {
	if len(s.drawPile) > 0 {
		return
	}
	s.rebuildDeck()
}

func (s *Session) rebuildDeck() {
	s.drawPile = shuffleDeck(s.rng, buildTemplate(s.cfg.Catalog), s.cfg.StreakLengths)
	s.discardPile = nil
	for _, p := range s.players {
		p.Hand = nil
	}
}

// drawTop pops the top of the draw pile. An empty draw pile recycles the
// whole discard pile through the same shuffle first; if both piles are empty
// there is simply no card to give.
func (s *Session) drawTop() (Card, bool) {
	if len(s.drawPile) == 0 && len(s.discardPile) > 0 {
		s.drawPile = shuffleDeck(s.rng, s.discardPile, s.cfg.StreakLengths)
		s.discardPile = nil
	}
	if len(s.drawPile) == 0 {
		return "", false
	}
	c := s.drawPile[0]
	s.drawPile = s.drawPile[1:]
	return c, true
}
