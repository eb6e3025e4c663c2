package logger

import (
	"github.com/sirupsen/logrus"
)

// Log: общий логгер приложения. До вызова Init пишет в stderr с уровнем info.
var Log = logrus.New()

// Init настраивает уровень и формат. В development логи текстовые и подробные.
func Init(level, env string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	if env == "development" {
		if lvl < logrus.DebugLevel {
			lvl = logrus.DebugLevel
		}
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
	Log.SetLevel(lvl)
}
