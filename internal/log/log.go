// Package log provides simple leveled logging for the registry, discovery
// and cmd/ tools. Time/date are omitted by default (systemd adds them) and
// can be turned back on with SetLogDateTime. The core codec packages
// (value, wire, message, strbuf, chunk, textcodec) never import this
// package: they report failure through returned values (*value.Flaw,
// error, ok bool), never by logging.
//
// Uses systemd-style numeric prefixes:
// https://www.freedesktop.org/software/systemd/man/sd-daemon.html
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

var logDateTime bool

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	DebugPrefix string = "<7>[DEBUG]   "
	InfoPrefix  string = "<6>[INFO]    "
	WarnPrefix  string = "<4>[WARNING] "
	ErrPrefix   string = "<3>[ERROR]   "
)

var (
	debugLog *log.Logger = log.New(DebugWriter, DebugPrefix, 0)
	infoLog  *log.Logger = log.New(InfoWriter, InfoPrefix, 0)
	warnLog  *log.Logger = log.New(WarnWriter, WarnPrefix, log.Lshortfile)
	errLog   *log.Logger = log.New(ErrWriter, ErrPrefix, log.Llongfile)

	debugTimeLog *log.Logger = log.New(DebugWriter, DebugPrefix, log.LstdFlags)
	infoTimeLog  *log.Logger = log.New(InfoWriter, InfoPrefix, log.LstdFlags)
	warnTimeLog  *log.Logger = log.New(WarnWriter, WarnPrefix, log.LstdFlags|log.Lshortfile)
	errTimeLog   *log.Logger = log.New(ErrWriter, ErrPrefix, log.LstdFlags|log.Llongfile)
)

// SetLevel discards writers for levels below lvl ("debug", "info", "warn",
// "err"). Anything not recognized falls back to "debug".
func SetLevel(lvl string) {
	switch lvl {
	case "err", "fatal":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
	default:
		fmt.Fprintf(os.Stderr, "log: invalid loglevel %q, using \"debug\"\n", lvl)
	}
}

// SetLogDateTime turns the standard date/time prefix on or off.
func SetLogDateTime(on bool) {
	logDateTime = on
}

func Debug(v ...interface{}) {
	if DebugWriter == io.Discard {
		return
	}
	out := fmt.Sprint(v...)
	if logDateTime {
		debugTimeLog.Output(2, out)
	} else {
		debugLog.Output(2, out)
	}
}

func Info(v ...interface{}) {
	if InfoWriter == io.Discard {
		return
	}
	out := fmt.Sprint(v...)
	if logDateTime {
		infoTimeLog.Output(2, out)
	} else {
		infoLog.Output(2, out)
	}
}

func Warn(v ...interface{}) {
	if WarnWriter == io.Discard {
		return
	}
	out := fmt.Sprint(v...)
	if logDateTime {
		warnTimeLog.Output(2, out)
	} else {
		warnLog.Output(2, out)
	}
}

func Error(v ...interface{}) {
	if ErrWriter == io.Discard {
		return
	}
	out := fmt.Sprint(v...)
	if logDateTime {
		errTimeLog.Output(2, out)
	} else {
		errLog.Output(2, out)
	}
}

// Fatal logs at error level then exits the process.
func Fatal(v ...interface{}) {
	Error(v...)
	os.Exit(1)
}

func Debugf(format string, v ...interface{}) { Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...interface{})  { Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...interface{})  { Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...interface{}) { Error(fmt.Sprintf(format, v...)) }
func Fatalf(format string, v ...interface{}) { Fatal(fmt.Sprintf(format, v...)) }
