package logging

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Entry
)

type Fields = logrus.Fields

func SetLevel(l logrus.Level) {
	logger.Logger.SetLevel(l)
}

// ParseAndSetLevel sets the level from its name, e.g. "debug".
func ParseAndSetLevel(name string) error {
	l, err := logrus.ParseLevel(name)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}

	SetLevel(l)
	return nil
}

func init() {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
}

func WithError(e error) *logrus.Entry {
	return logger.WithError(e)
}

func Entry() *logrus.Entry {
	return logger
}

// Component tags entries with the part of the program logging them.
func Component(name string) *logrus.Entry {
	return logger.WithField("component", name)
}
