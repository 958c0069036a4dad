package db

import "errors"

var (
	ErrInvalidConfig = errors.New("db: invalid connection settings")
	ErrConnect       = errors.New("db: could not reach database")
	ErrHealthcheck   = errors.New("db: healthcheck failed")
	ErrMigrate       = errors.New("db: migration failed")
)
