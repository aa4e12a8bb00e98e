package app

import "errors"

var (
	// ErrCollectionFull is returned when a claim would exceed the
	// per-user per-chat collection cap.
	ErrCollectionFull = errors.New("collection is full")

	// ErrAlreadyCollected is returned when a user already owns the
	// character in that chat.
	ErrAlreadyCollected = errors.New("character already collected")

	// ErrNotAdmin is returned when a non-admin invokes an admin flow.
	ErrNotAdmin = errors.New("not an admin")

	// ErrNoMetadataRef is returned when a character has no external
	// metadata reference to refresh from.
	ErrNoMetadataRef = errors.New("character has no metadata reference")
)
