package services

import (
	"slices"

	"truthordare/models"
)

// EligibleCards returns the cards a player of the given gender may draw for
// mode and kind, skipping non-repeatable cards already in playedIDs.
func EligibleCards(cards []models.Card, modeID string, kind models.CardKind, gender models.Gender, playedIDs []string) []models.Card {
	var eligible []models.Card
	for _, card := range cards {
		if !matchesPool(card, modeID, kind, gender) {
			continue
		}
		if !card.IsRepeatable && slices.Contains(playedIDs, card.ID) {
			continue
		}
		eligible = append(eligible, card)
	}
	return eligible
}

// AvailableCardCount counts the cards of a mode and kind a player of the given
// gender could ever draw, regardless of history.
func AvailableCardCount(cards []models.Card, modeID string, kind models.CardKind, gender models.Gender) int {
	count := 0
	for _, card := range cards {
		if matchesPool(card, modeID, kind, gender) {
			count++
		}
	}
	return count
}

func matchesPool(card models.Card, modeID string, kind models.CardKind, gender models.Gender) bool {
	return card.ModeID == modeID &&
		card.Kind == kind &&
		card.Player1Gender.Matches(gender)
}
