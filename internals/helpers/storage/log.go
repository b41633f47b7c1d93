package storage

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func logger() *zerolog.Logger {
	l := log.With().Str("component", "storage").Logger()
	return &l
}
