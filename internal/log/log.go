package log

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

const timeFormat = "2006-01-02 15:04:05"

type Logger interface {
	Ok(text string, args ...interface{})
	Info(text string, args ...interface{})
	Warn(text string, args ...interface{})
	Fatal(text string, args ...interface{})

	Prefix(prefix string) Logger
}

type defaultLogger struct {
	prefix string

	ok   *color.Color
	info *color.Color
	warn *color.Color
	fail *color.Color
}

func NewDefaultLogger() Logger {
	return &defaultLogger{
		ok:   color.New(color.FgGreen),
		info: color.New(color.FgCyan),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
	}
}

func (l *defaultLogger) Prefix(prefix string) Logger {
	newLogger := *l
	newLogger.prefix = prefix
	return &newLogger
}

func (l *defaultLogger) Ok(text string, args ...interface{}) {
	l.print(l.ok, "  OK  ", text, args...)
}

func (l *defaultLogger) Info(text string, args ...interface{}) {
	l.print(l.info, " INFO ", text, args...)
}

func (l *defaultLogger) Warn(text string, args ...interface{}) {
	l.print(l.warn, " WARN ", text, args...)
}

func (l *defaultLogger) Fatal(text string, args ...interface{}) {
	l.print(l.fail, "FATAL ", text, args...)
	os.Exit(1)
}

func (l *defaultLogger) print(c *color.Color, level, text string, args ...interface{}) {
	header := time.Now().Format(timeFormat) + " [" + level + "]"
	if l.prefix != "" {
		header += " " + l.prefix + " //"
	}

	_, _ = c.Fprintf(os.Stdout, header+" "+fmt.Sprintf(text, args...)+"\n")
}
