package logx

import "github.com/sirupsen/logrus"

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.Formatter = &logrus.TextFormatter{
		DisableLevelTruncation: true,
		PadLevelText:           true,
		TimestampFormat:        "2006/01/02 15:04:05",
		FullTimestamp:          true,
	}
}

func SetDebug(debug bool) {
	if debug {
		Logger.Level = logrus.DebugLevel
	}
}

func Debugf(format string, args ...any) {
	Logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	Logger.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	Logger.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	Logger.Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	Logger.Fatalf(format, args...)
}

func Info(args ...any) {
	Logger.Infoln(args...)
}

func Fatal(args ...any) {
	Logger.Fatalln(args...)
}
