// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"io"

	"github.com/cockroachdb/treesas"
	"github.com/rs/zerolog"
)

// zeroLogger adapts a zerolog.Logger to treesas.Logger.
type zeroLogger struct {
	l zerolog.Logger
}

var _ treesas.Logger = zeroLogger{}

func newLogger(w io.Writer) zeroLogger {
	return zeroLogger{
		l: zerolog.New(zerolog.NewConsoleWriter(
			func(cw *zerolog.ConsoleWriter) { cw.Out = w },
			func(cw *zerolog.ConsoleWriter) { cw.TimeFormat = "15:04:05.000" },
		)).Level(zerolog.InfoLevel).With().Timestamp().Logger(),
	}
}

// Infof implements the treesas.Logger interface.
func (z zeroLogger) Infof(format string, args ...interface{}) {
	z.l.Info().Msgf(format, args...)
}

// Errorf implements the treesas.Logger interface.
func (z zeroLogger) Errorf(format string, args ...interface{}) {
	z.l.Error().Msgf(format, args...)
}

// Fatalf implements the treesas.Logger interface.
func (z zeroLogger) Fatalf(format string, args ...interface{}) {
	z.l.Fatal().Msgf(format, args...)
}
