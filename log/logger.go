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

package log

import (
	"fmt"
	"io"
	"log"
)

// levelLogger writes level-tagged lines through a logutils filter, so the
// minimum level configured in the filter decides what reaches the output.
type levelLogger struct {
	log.Logger
	level string
}

func newLevel(level string, out io.Writer, prefix string, flag int) *levelLogger {
	var l levelLogger

	l.level = level
	l.SetOutput(out)
	l.SetPrefix(prefix)
	l.SetFlags(flag)
	return &l
}

func (l *levelLogger) Error(v ...interface{}) {
	_ = l.Output(caller, "[ERROR] "+fmt.Sprint(v...))
	osExit(1)
}

func (l *levelLogger) Errorf(format string, v ...interface{}) {
	_ = l.Output(caller, "[ERROR] "+fmt.Sprintf(format, v...))
	osExit(1)
}

func (l *levelLogger) Info(v ...interface{}) {
	_ = l.Output(caller, "[INFO] "+fmt.Sprint(v...))
}

func (l *levelLogger) Infof(format string, v ...interface{}) {
	_ = l.Output(caller, "[INFO] "+fmt.Sprintf(format, v...))
}

func (l *levelLogger) Debug(v ...interface{}) {
	_ = l.Output(caller, "[DEBUG] "+fmt.Sprint(v...))
}

func (l *levelLogger) Debugf(format string, v ...interface{}) {
	_ = l.Output(caller, "[DEBUG] "+fmt.Sprintf(format, v...))
}

func (l *levelLogger) GetLoggerLevel() string {
	return l.level
}

// silentLogger discards everything but still stops execution on errors.
type silentLogger struct{}

func newSilent() *silentLogger {
	return new(silentLogger)
}

func (l *silentLogger) Error(v ...interface{})                 { osExit(1) }
func (l *silentLogger) Errorf(format string, v ...interface{}) { osExit(1) }
func (l *silentLogger) Info(v ...interface{})                  {}
func (l *silentLogger) Infof(format string, v ...interface{})  {}
func (l *silentLogger) Debug(v ...interface{})                 {}
func (l *silentLogger) Debugf(format string, v ...interface{}) {}

func (l *silentLogger) GetLoggerLevel() string {
	return SILENT
}
