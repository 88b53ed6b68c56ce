package services

import (
	"math/rand/v2"
	"slices"
	"strings"

	"truthordare/models"
)

// Rand is the source of randomness for draws. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Drawer picks cards uniformly among the eligible ones.
type Drawer struct {
	rng Rand
}

func NewDrawer(rng Rand) *Drawer {
	if rng == nil {
		rng = globalRand{}
	}
	return &Drawer{rng: rng}
}

// DrawResult is the outcome of a successful draw. History is the requester's
// updated history; Reset is set when the mode/kind part of it was cleared
// because every eligible card had been used.
type DrawResult struct {
	Card    models.Card
	Reset   bool
	History []string
}

// Draw selects a card for requester. The history passed in is not modified.
// After an exhaustion reset the most recent card of the pool is skipped
// unless it is the only one left.
func (d *Drawer) Draw(cards []models.Card, modeID string, kind models.CardKind, requester models.Player, history []string) (DrawResult, error) {
	history = slices.Clone(history)
	reset := false

	eligible := EligibleCards(cards, modeID, kind, requester.Gender, history)
	if len(eligible) == 0 {
		pool := poolIDs(cards, modeID, kind)
		last := lastFromPool(history, pool)
		cleared := slices.DeleteFunc(slices.Clone(history), func(id string) bool {
			_, ok := pool[id]
			return ok
		})
		if len(cleared) == len(history) {
			return DrawResult{}, ErrNoCardsAvailable
		}

		eligible = EligibleCards(cards, modeID, kind, requester.Gender, cleared)
		if len(eligible) == 0 {
			return DrawResult{}, ErrNoCardsAvailable
		}
		if len(eligible) > 1 && last != "" {
			eligible = slices.DeleteFunc(eligible, func(c models.Card) bool { return c.ID == last })
		}
		history = cleared
		reset = true
	}

	card := eligible[d.rng.IntN(len(eligible))]
	if !card.IsRepeatable {
		history = append(history, card.ID)
	}

	return DrawResult{
		Card:    card,
		Reset:   reset,
		History: history,
	}, nil
}

// SelectSecondPlayer picks another session player for a two-player card.
// When nobody matches the filter it falls back to any other player.
func (d *Drawer) SelectSecondPlayer(requester models.Player, players []models.Player, filter models.GenderFilter) (models.Player, bool) {
	var others, matching []models.Player
	for _, p := range players {
		if p.ID == requester.ID {
			continue
		}
		others = append(others, p)
		if filter.Matches(p.Gender) {
			matching = append(matching, p)
		}
	}
	if len(others) == 0 {
		return models.Player{}, false
	}
	if len(matching) == 0 {
		matching = others
	}
	return matching[d.rng.IntN(len(matching))], true
}

// FormatDescription substitutes player names into a card description.
// Player2 is only replaced when a second player is given.
func FormatDescription(card models.Card, player1, player2 string) string {
	description := strings.ReplaceAll(card.Description, models.Player1Placeholder, player1)
	if player2 != "" {
		description = strings.ReplaceAll(description, models.Player2Placeholder, player2)
	}
	return description
}

func poolIDs(cards []models.Card, modeID string, kind models.CardKind) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, c := range cards {
		if c.ModeID == modeID && c.Kind == kind {
			ids[c.ID] = struct{}{}
		}
	}
	return ids
}

func lastFromPool(history []string, pool map[string]struct{}) string {
	for i := len(history) - 1; i >= 0; i-- {
		if _, ok := pool[history[i]]; ok {
			return history[i]
		}
	}
	return ""
}
