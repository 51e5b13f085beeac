// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// Package logging is a small level-filtered wrapper around the standard
// library logger, used by every geoshard package instead of fmt.Println or
// the bare log package.
package logging

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

type Level int32

const (
	Silent Level = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

func (l Level) String() string {
	switch l {
	case Silent:
		return "Silent"
	case Fatal:
		return "Fatal"
	case Error:
		return "Error"
	case Warn:
		return "Warn"
	case Info:
		return "Info"
	case Debug:
		return "Debug"
	case Trace:
		return "Trace"
	default:
		return "Unknown"
	}
}

func LevelFromString(s string) Level {
	switch s {
	case "Silent":
		return Silent
	case "Fatal":
		return Fatal
	case "Error":
		return Error
	case "Warn":
		return Warn
	case "Debug":
		return Debug
	case "Trace":
		return Trace
	default:
		return Info
	}
}

var currentLevel int32 = int32(Info)

var std = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)

// SetLogLevel sets the global log level. Concurrency-safe; may be called
// while other goroutines are logging.
func SetLogLevel(l Level) {
	atomic.StoreInt32(&currentLevel, int32(l))
}

func GetLogLevel() Level {
	return Level(atomic.LoadInt32(&currentLevel))
}

func logf(l Level, tag string, format string, v ...interface{}) {
	if GetLogLevel() < l {
		return
	}
	std.Output(3, fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, v...)))
}

func Tracef(format string, v ...interface{}) { logf(Trace, "TRAC", format, v...) }
func Debugf(format string, v ...interface{}) { logf(Debug, "DEBU", format, v...) }
func Infof(format string, v ...interface{})  { logf(Info, "INFO", format, v...) }
func Warnf(format string, v ...interface{})  { logf(Warn, "WARN", format, v...) }
func Errorf(format string, v ...interface{}) { logf(Error, "ERRO", format, v...) }

// Fatalf logs at Fatal level (so every level except Silent prints it) and
// exits the process, mirroring the teacher's own boot-time crash convention.
func Fatalf(format string, v ...interface{}) {
	logf(Fatal, "FATA", format, v...)
	os.Exit(1)
}
