package giveawayservice

import "errors"

var (
	// ErrAlreadyRegistered is returned when the email or user id has an entry.
	ErrAlreadyRegistered = errors.New("email or BC user id already registered")

	// ErrEntryNotFound is returned when a spin names an unknown email.
	ErrEntryNotFound = errors.New("no entry found for this email")

	// ErrAlreadySpun is returned on a second spin for the same email.
	ErrAlreadySpun = errors.New("wheel already spun")

	// ErrContentNotFound is returned when deleting a missing content block.
	ErrContentNotFound = errors.New("giveaway content not found")
)
