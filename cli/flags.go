package cli

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// A StringsFlag collects repeated occurrences of the same flag.
type StringsFlag []string

func (s StringsFlag) String() string {
	return strings.Join(s, " ")
}

func (s *StringsFlag) Set(str string) error {
	*s = append(*s, str)
	return nil
}

func (s StringsFlag) Get() interface{} {
	return []string(s)
}

// A LevelFlag is a logrus log level usable as a flag.Value.
type LevelFlag logrus.Level

func (l LevelFlag) String() string {
	return logrus.Level(l).String()
}

func (l *LevelFlag) Set(str string) error {
	lv, err := logrus.ParseLevel(str)
	if err != nil {
		return err
	}
	*l = LevelFlag(lv)
	return nil
}

func (l LevelFlag) Get() interface{} {
	return logrus.Level(l)
}

// Level returns the wrapped logrus level.
func (l LevelFlag) Level() logrus.Level {
	return logrus.Level(l)
}
