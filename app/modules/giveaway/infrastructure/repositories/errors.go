package giveawaydb

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("giveaway record not found")

	// ErrDuplicate is returned when an email or user id is already registered.
	ErrDuplicate = errors.New("giveaway entry already registered")

	// ErrPrizeAlreadySet is returned when an entrant has already spun.
	ErrPrizeAlreadySet = errors.New("prize already recorded")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}
