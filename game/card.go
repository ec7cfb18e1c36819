package game

import "strconv"

// Card is a single card value from the catalog. Numeric cards are "0".."12";
// everything else counts as an action card for shuffle purposes.
type Card string

const (
	CardDouble       Card = "2x"
	CardPlusFour     Card = "+4"
	CardPlusFive     Card = "+5"
	CardMinusSix     Card = "-6"
	CardSecondChance Card = "second_chance"
	CardFreeze       Card = "freeze"
	CardSwap         Card = "swap"
	CardTake3        Card = "take3"
)

// NumericCard builds the card for a numeric value 0..12.
func NumericCard(v int) Card {
	return Card(strconv.Itoa(v))
}

// Numeric reports the numeric value of the card, if it has one.
func (c Card) Numeric() (int, bool) {
	v, err := strconv.Atoi(string(c))
	if err != nil || v < 0 || v > 12 {
		return 0, false
	}
	return v, true
}

// IsAction reports whether the card belongs to the action partition of the
// deck (modifiers and playable action cards, everything non-numeric).
func (c Card) IsAction() bool {
	_, ok := c.Numeric()
	return !ok
}

// IsModifier reports whether the card only changes the hand score.
func (c Card) IsModifier() bool {
	switch c {
	case CardDouble, CardPlusFour, CardPlusFive, CardMinusSix:
		return true
	}
	return false
}

// TriggersPending reports whether drawing the card opens a pending action
// that the current actor must resolve before the turn can move on.
func (c Card) TriggersPending() bool {
	switch c {
	case CardFreeze, CardSwap, CardTake3:
		return true
	}
	return false
}

// CatalogEntry describes one card value in the static catalog: how many
// copies the deck template holds and which art asset the client shows.
type CatalogEntry struct {
	Card         Card   `json:"card"`
	Count        int    `json:"count"`
	DisplayAsset string `json:"displayAsset"`
}

// DefaultCatalog returns the standard deck template: numeric card n appears
// n times (a single 0), one copy of each score modifier and three copies of
// each playable action card.
func DefaultCatalog() []CatalogEntry {
	entries := []CatalogEntry{
		{Card: NumericCard(0), Count: 1, DisplayAsset: "num_0"},
	}
	for v := 1; v <= 12; v++ {
		entries = append(entries, CatalogEntry{
			Card:         NumericCard(v),
			Count:        v,
			DisplayAsset: "num_" + strconv.Itoa(v),
		})
	}
	entries = append(entries,
		CatalogEntry{Card: CardDouble, Count: 1, DisplayAsset: "mod_double"},
		CatalogEntry{Card: CardPlusFour, Count: 1, DisplayAsset: "mod_plus4"},
		CatalogEntry{Card: CardPlusFive, Count: 1, DisplayAsset: "mod_plus5"},
		CatalogEntry{Card: CardMinusSix, Count: 1, DisplayAsset: "mod_minus6"},
		CatalogEntry{Card: CardSecondChance, Count: 3, DisplayAsset: "action_second_chance"},
		CatalogEntry{Card: CardFreeze, Count: 3, DisplayAsset: "action_freeze"},
		CatalogEntry{Card: CardSwap, Count: 3, DisplayAsset: "action_swap"},
		CatalogEntry{Card: CardTake3, Count: 3, DisplayAsset: "action_take3"},
	)
	return entries
}
