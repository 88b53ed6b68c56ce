package services

import (
	"context"
	"math/rand/v2"
	"testing"

	"truthordare/models"
	"truthordare/storage"
)

type staticSource struct {
	database *models.CardDatabase
	err      error
}

func (s *staticSource) LoadCatalog(context.Context) (*models.CardDatabase, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.database, nil
}

func testDatabase() *models.CardDatabase {
	return &models.CardDatabase{
		Modes: []models.Mode{
			{ID: "classic", Name: "Classic"},
			{ID: "solo", Name: "Solo"},
			{ID: "extreme", Name: "Extreme", IsPremium: true},
		},
		Cards: []models.Card{
			{ID: "a1", ModeID: "classic", Kind: models.CardKindAction, Description: "Player1 does 10 push-ups", Player1Gender: models.GenderFilterAll},
			{ID: "a2", ModeID: "classic", Kind: models.CardKindAction, Description: "Player1 kisses Player2", Player1Gender: models.GenderFilterAll, Player2Gender: models.GenderFilterFemale},
			{ID: "a3", ModeID: "classic", Kind: models.CardKindAction, Description: "Player1 sings", Player1Gender: models.GenderFilterAll, IsRepeatable: true},
			{ID: "t1", ModeID: "classic", Kind: models.CardKindTruth, Description: "Player1, what is your biggest secret?", Player1Gender: models.GenderFilterAll},
			{ID: "t2", ModeID: "classic", Kind: models.CardKindTruth, Description: "Player1, who is your crush?", Player1Gender: models.GenderFilterMale},
			{ID: "t3", ModeID: "classic", Kind: models.CardKindTruth, Description: "Player1, what is your biggest fear?", Player1Gender: models.GenderFilterFemale},
			{ID: "t4", ModeID: "classic", Kind: models.CardKindTruth, Description: "Player1, what is your wildest dream?", Player1Gender: models.GenderFilterAll, IsRepeatable: true},
			{ID: "s1", ModeID: "solo", Kind: models.CardKindTruth, Description: "Player1, tell a joke", Player1Gender: models.GenderFilterAll},
			{ID: "x1", ModeID: "extreme", Kind: models.CardKindAction, Description: "Player1 does something extreme", Player1Gender: models.GenderFilterAll},
		},
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func newTestCatalog(t *testing.T, store storage.Store) *CatalogService {
	t.Helper()
	catalog := NewCatalogService(&staticSource{database: testDatabase()}, store)
	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

func testPlayers() []models.Player {
	return []models.Player{
		{ID: "p-ana", Name: "Ana", Gender: models.GenderFemale},
		{ID: "p-leo", Name: "Leo", Gender: models.GenderMale},
	}
}

func cardIDs(cards []models.Card) map[string]bool {
	ids := make(map[string]bool, len(cards))
	for _, c := range cards {
		ids[c.ID] = true
	}
	return ids
}
