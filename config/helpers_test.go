package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

func nullLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
