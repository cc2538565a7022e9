package broker

import "errors"

var (
	ErrDuplicateChallenge = errors.New("connection already owns an open challenge")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrSelfAccept         = errors.New("cannot accept own challenge")
	ErrInvalidAmount      = errors.New("invalid stake amount")
	ErrAlreadyInMatch     = errors.New("connection already in a live match")
)
