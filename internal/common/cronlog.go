package common

import (
	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// cronLogger adapts phuslu/log to the cron.Logger interface so scheduler
// output lands in the same structured stream as everything else.
type cronLogger struct {
	log log.Logger
}

// NewCronLogger returns a cron.Logger writing structured console output at
// the given level.
func NewCronLogger(level string) cron.Logger {
	return &cronLogger{
		log: log.Logger{
			Level:      log.ParseLevel(level),
			TimeFormat: "15:04:05",
			Writer:     &log.ConsoleWriter{ColorOutput: false},
		},
	}
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Info().KeysAndValues(keysAndValues...).Msg(msg)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error().Err(err).KeysAndValues(keysAndValues...).Msg(msg)
}
