// Package logger holds the process-wide logrus instance and an adapter
// that lets the camera log through it.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: true,
	})

	if os.Getenv("DEBUG") == "1" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// Adapter exposes a logrus logger through the camera's Logger interface,
// turning key/value pairs into logrus fields.
type Adapter struct {
	log *logrus.Logger
}

// NewAdapter wraps log. A nil log wraps the package-wide instance.
func NewAdapter(log *logrus.Logger) *Adapter {
	if log == nil {
		log = Log
	}
	return &Adapter{log: log}
}

func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.log.WithFields(fields(keysAndValues)).Info(msg)
}

func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.log.WithFields(fields(keysAndValues)).Error(msg)
}

// fields pairs up keys and values; a trailing key without a value is kept
// under the key itself.
func fields(kv []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if i+1 < len(kv) {
			f[key] = kv[i+1]
		} else {
			f[key] = ""
		}
	}
	return f
}
