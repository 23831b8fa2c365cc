/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package log implements the frontier/log wrapper that formats the logs in
// our custom format as well as logging levels.
package log

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hashicorp/logutils"
)

// Log levels constants
const (
	SILENT = "silent"
	ERROR  = "error"
	INFO   = "info"
	DEBUG  = "debug"

	caller = 3
)

const stdFlags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile | log.LUTC

// Private interface for the std variable.
type logger interface {
	Error(v ...interface{})
	Errorf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	GetLoggerLevel() string
}

func getFilter(lv string, w io.Writer) *logutils.LevelFilter {

	mapLevel := map[string]logutils.LogLevel{
		ERROR: "ERROR",
		INFO:  "INFO",
		DEBUG: "DEBUG",
	}

	return &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "ERROR"},
		MinLevel: mapLevel[lv],
		Writer:   w,
	}
}

// The default logger is an log.ERROR level.
var std logger = newLevel(ERROR, getFilter(ERROR, os.Stdout), "Frontier: ", stdFlags)

// To allow mocking we require a switchable variable.
var osExit = os.Exit

// Below is the public interface for the logger, a proxy for the switchable
// implementation defined in std.

// Error is the public log function to write to stdOut and stop execution.
func Error(v ...interface{}) {
	std.Error(v...)
}

// Errorf is the public log function with params to write to stdOut and stop
// execution.
func Errorf(format string, v ...interface{}) {
	std.Errorf(format, v...)
}

var (

	// Fatal is the public log function to write to stdOut and stop execution.
	// Same as Error.
	Fatal = Error

	// Fatalf is the public log function with params to write to stdOut and
	// stop execution. Same as Errorf.
	Fatalf = Errorf
)

// Info is the public log function to write information relative to the usage
// of the frontier packages.
func Info(v ...interface{}) {
	std.Info(v...)
}

// Infof is the public log function to write information with params relative
// to the usage of the frontier packages.
func Infof(format string, v ...interface{}) {
	std.Infof(format, v...)
}

// Debug is the public log function to write internal debug information.
func Debug(v ...interface{}) {
	std.Debug(v...)
}

// Debugf is the public log function to write internal debug information with
// params.
func Debugf(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

// GetLoggerLevel returns the string representation of the current logger
// level.
func GetLoggerLevel() string {
	return std.GetLoggerLevel()
}

// SetLogger is a function that switches between verbosity loggers. Default
// is error level. Available levels are "silent", "debug", "info" and "error".
func SetLogger(namespace, lv string) {
	setLogger(namespace, lv, os.Stdout)
}

func setLogger(namespace, lv string, w io.Writer) {

	prefix := fmt.Sprintf("%s ", namespace)

	switch lv {
	case SILENT:
		std = newSilent()
	case ERROR, INFO, DEBUG:
		std = newLevel(lv, getFilter(lv, w), prefix, stdFlags)
	default:
		l := newLevel(INFO, getFilter(INFO, w), prefix, stdFlags)
		l.Infof("Incorrect level of verbosity (%v) fallback to log.INFO", lv)
		std = l
	}
}
