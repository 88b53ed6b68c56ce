package services

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateName      = errors.New("player name already taken")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNotEnoughPlayers   = errors.New("at least 2 players are required")
	ErrMustChooseAction   = errors.New("too many truths in a row, an action is required")
	ErrNoCardsAvailable   = errors.New("no cards available")
	ErrSessionNotActive   = errors.New("no game in progress")
	ErrCatalogLoad        = errors.New("failed to load card catalog")
	ErrCatalogNotLoaded   = errors.New("card catalog not loaded")
	ErrModeNotFound       = errors.New("mode not found")
	ErrModeLocked         = errors.New("mode is locked")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrInvalidUnlockToken = errors.New("invalid unlock token")
)
