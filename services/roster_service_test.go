package services

import (
	"context"
	"errors"
	"testing"

	"truthordare/models"
	"truthordare/storage"
)

func TestRosterAdd(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	roster := NewRosterService(store)

	player, err := roster.Add(ctx, &AddPlayerRequest{Name: " Sam ", Gender: "male"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if player.ID == "" || player.Name != "Sam" || player.Gender != models.GenderMale {
		t.Fatalf("unexpected player %+v", player)
	}
	if len(player.PlayedCardIDs) != 0 {
		t.Fatalf("new player has history")
	}

	var stored []models.Player
	if found, err := store.Get(ctx, storage.KeyPlayers, &stored); err != nil || !found || len(stored) != 1 {
		t.Fatalf("roster not persisted: %v %v %v", stored, found, err)
	}
}

func TestRosterAddRejects(t *testing.T) {
	ctx := context.Background()
	roster := NewRosterService(storage.NewMemoryStore())
	if _, err := roster.Add(ctx, &AddPlayerRequest{Name: "Sam", Gender: "male"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	tests := []struct {
		name string
		req  AddPlayerRequest
		want error
	}{
		{name: "duplicate ignoring case", req: AddPlayerRequest{Name: "sam", Gender: "female"}, want: ErrDuplicateName},
		{name: "empty name", req: AddPlayerRequest{Name: "  ", Gender: "female"}, want: ErrInvalidInput},
		{name: "empty gender", req: AddPlayerRequest{Name: "Ana"}, want: ErrInvalidInput},
		{name: "wildcard gender", req: AddPlayerRequest{Name: "Ana", Gender: "all"}, want: ErrInvalidInput},
		{name: "unknown gender", req: AddPlayerRequest{Name: "Ana", Gender: "robot"}, want: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := roster.Add(ctx, &tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if got := len(roster.List()); got != 1 {
		t.Fatalf("rejected adds changed the roster: %d players", got)
	}
}

func TestRosterAcceptsFrenchGenderLabels(t *testing.T) {
	roster := NewRosterService(storage.NewMemoryStore())
	player, err := roster.Add(context.Background(), &AddPlayerRequest{Name: "Chloé", Gender: "Femme"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if player.Gender != models.GenderFemale {
		t.Fatalf("gender = %q", player.Gender)
	}
}

func TestRosterRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	roster := NewRosterService(store)

	ana, _ := roster.Add(ctx, &AddPlayerRequest{Name: "Ana", Gender: "female"})
	if _, err := roster.Add(ctx, &AddPlayerRequest{Name: "Leo", Gender: "male"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := roster.Remove(ctx, "missing"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if err := roster.Remove(ctx, ana.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	players := roster.List()
	if len(players) != 1 || players[0].Name != "Leo" {
		t.Fatalf("roster = %+v", players)
	}

	if err := roster.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(roster.List()) != 0 {
		t.Fatalf("roster not cleared")
	}
	keys, _ := store.Keys(ctx)
	if len(keys) != 0 {
		t.Fatalf("players key still stored: %v", keys)
	}
}

func TestRosterLoadAndNotify(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	first := NewRosterService(store)
	if _, err := first.Add(ctx, &AddPlayerRequest{Name: "Ana", Gender: "female"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	second := NewRosterService(store)
	var seen [][]models.Player
	unsubscribe := second.Subject().Subscribe(func(players []models.Player) {
		seen = append(seen, players)
	})
	defer unsubscribe()

	if err := second.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := second.Add(ctx, &AddPlayerRequest{Name: "ANA", Gender: "female"}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("loaded roster not used for uniqueness: %v", err)
	}
	if _, err := second.Add(ctx, &AddPlayerRequest{Name: "Leo", Gender: "male"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// replay, load, add
	if len(seen) != 3 || len(seen[1]) != 1 || len(seen[2]) != 2 {
		t.Fatalf("notifications = %v", seen)
	}
}

func TestRosterStorageFailureStillAdds(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWrites = true
	roster := NewRosterService(store)

	player, err := roster.Add(context.Background(), &AddPlayerRequest{Name: "Ana", Gender: "female"})
	if !errors.Is(err, storage.ErrWrite) {
		t.Fatalf("expected storage.ErrWrite, got %v", err)
	}
	if player == nil || len(roster.List()) != 1 {
		t.Fatalf("player must be added in memory")
	}
}
