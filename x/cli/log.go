// Package cli is a thin batch driver: it parses flags, loads transactions
// from a CSV-like file, builds an itembase.Base and a run configuration,
// drives apriori.Tree.Run/RunTree, and writes the result with a writer
// (writer.go). Logging follows cc-backend's pkg/log shape (leveled
// *log.Logger values with syslog-style prefixes), adapted down to the
// levels this driver actually emits.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
)

var logDateTime bool

var (
	debugWriter io.Writer = os.Stderr
	infoWriter  io.Writer = os.Stderr
	warnWriter  io.Writer = os.Stderr
	errWriter   io.Writer = os.Stderr
)

var (
	debugPrefix = "<7>[DEBUG]   "
	infoPrefix  = "<6>[INFO]    "
	warnPrefix  = "<4>[WARNING] "
	errPrefix   = "<3>[ERROR]   "
)

var (
	debugLog = log.New(debugWriter, debugPrefix, 0)
	infoLog  = log.New(infoWriter, infoPrefix, 0)
	warnLog  = log.New(warnWriter, warnPrefix, 0)
	errLog   = log.New(errWriter, errPrefix, log.Lshortfile)

	debugTimeLog = log.New(debugWriter, debugPrefix, log.LstdFlags)
	infoTimeLog  = log.New(infoWriter, infoPrefix, log.LstdFlags)
	warnTimeLog  = log.New(warnWriter, warnPrefix, log.LstdFlags)
	errTimeLog   = log.New(errWriter, errPrefix, log.LstdFlags|log.Lshortfile)
)

// SetLogLevel silences writers below lvl ("debug", "info", "warn", "err").
func SetLogLevel(lvl string) {
	switch lvl {
	case "err", "fatal":
		warnWriter = io.Discard
		fallthrough
	case "warn":
		infoWriter = io.Discard
		fallthrough
	case "info":
		debugWriter = io.Discard
	case "debug":
	default:
		fmt.Fprintf(os.Stderr, "apriori: invalid loglevel %q, using debug\n", lvl)
		SetLogLevel("debug")
		return
	}
	debugLog.SetOutput(debugWriter)
	infoLog.SetOutput(infoWriter)
	warnLog.SetOutput(warnWriter)
	debugTimeLog.SetOutput(debugWriter)
	infoTimeLog.SetOutput(infoWriter)
	warnTimeLog.SetOutput(warnWriter)
}

// SetLogDateTime toggles a timestamp prefix on every subsequent log line.
func SetLogDateTime(enabled bool) { logDateTime = enabled }

func logDebug(v ...interface{}) {
	if debugWriter == io.Discard {
		return
	}
	if logDateTime {
		debugTimeLog.Output(2, fmt.Sprint(v...))
	} else {
		debugLog.Output(2, fmt.Sprint(v...))
	}
}

func logInfo(v ...interface{}) {
	if infoWriter == io.Discard {
		return
	}
	if logDateTime {
		infoTimeLog.Output(2, fmt.Sprint(v...))
	} else {
		infoLog.Output(2, fmt.Sprint(v...))
	}
}

func logWarn(v ...interface{}) {
	if warnWriter == io.Discard {
		return
	}
	if logDateTime {
		warnTimeLog.Output(2, fmt.Sprint(v...))
	} else {
		warnLog.Output(2, fmt.Sprint(v...))
	}
}

func logErr(v ...interface{}) {
	if logDateTime {
		errTimeLog.Output(2, fmt.Sprint(v...))
	} else {
		errLog.Output(2, fmt.Sprint(v...))
	}
}
