package storage

import (
	"context"
	"errors"
)

// Keys used by the game engine.
const (
	KeyPlayers       = "players"
	KeyGameSession   = "gameSession"
	KeyPhotos        = "photos"
	KeyUnlockedModes = "unlockedModes"
)

var (
	ErrWrite = errors.New("storage write failed")
	ErrRead  = errors.New("storage read failed")
)

// Store is an asynchronous key-value store holding JSON-encoded values.
// Get reports found=false without error when the key is absent.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}
