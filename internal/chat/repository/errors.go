package repository

import "errors"

var (
	ErrThreadNotFound = errors.New("thread not found")
)
