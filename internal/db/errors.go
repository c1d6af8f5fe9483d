package db

import "errors"

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrNewsNotFound = errors.New("news not found")

	ErrSessionNotFound = errors.New("session not found")
)
