package models

import "errors"

// Sentinel errors returned by the repositories.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrInUse         = errors.New("record is still referenced")
)
