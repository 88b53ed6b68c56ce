package services

import (
	"reflect"
	"testing"

	"truthordare/models"
)

func TestEligibleCards(t *testing.T) {
	cards := testDatabase().Cards

	tests := []struct {
		name   string
		mode   string
		kind   models.CardKind
		gender models.Gender
		played []string
		want   []string
	}{
		{
			name:   "female truths",
			mode:   "classic",
			kind:   models.CardKindTruth,
			gender: models.GenderFemale,
			want:   []string{"t1", "t3", "t4"},
		},
		{
			name:   "male truths",
			mode:   "classic",
			kind:   models.CardKindTruth,
			gender: models.GenderMale,
			want:   []string{"t1", "t2", "t4"},
		},
		{
			name:   "played non-repeatable cards are skipped",
			mode:   "classic",
			kind:   models.CardKindTruth,
			gender: models.GenderMale,
			played: []string{"t1", "t4"},
			want:   []string{"t2", "t4"},
		},
		{
			name:   "actions only",
			mode:   "classic",
			kind:   models.CardKindAction,
			gender: models.GenderMale,
			played: []string{"a1"},
			want:   []string{"a2", "a3"},
		},
		{
			name:   "other mode",
			mode:   "solo",
			kind:   models.CardKindAction,
			gender: models.GenderMale,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleCards(cards, tt.mode, tt.kind, tt.gender, tt.played)
			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Fatalf("got %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestEligibleCardsIsPure(t *testing.T) {
	cards := testDatabase().Cards
	played := []string{"t1"}

	first := EligibleCards(cards, "classic", models.CardKindTruth, models.GenderFemale, played)
	second := EligibleCards(cards, "classic", models.CardKindTruth, models.GenderFemale, played)

	if !reflect.DeepEqual(cardIDs(first), cardIDs(second)) {
		t.Fatalf("results differ: %v vs %v", cardIDs(first), cardIDs(second))
	}
	if len(played) != 1 || played[0] != "t1" {
		t.Fatalf("played ids were modified: %v", played)
	}
}

func TestEligibleCardsEmptyCatalog(t *testing.T) {
	if got := EligibleCards(nil, "classic", models.CardKindTruth, models.GenderMale, nil); len(got) != 0 {
		t.Fatalf("expected no cards, got %v", got)
	}
}

func TestAvailableCardCountIgnoresHistory(t *testing.T) {
	cards := testDatabase().Cards
	if got := AvailableCardCount(cards, "classic", models.CardKindTruth, models.GenderFemale); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
	if got := AvailableCardCount(cards, "solo", models.CardKindAction, models.GenderFemale); got != 0 {
		t.Fatalf("count = %d, want 0", got)
	}
}
