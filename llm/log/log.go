/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package log is the process-wide leveled logger. All output goes to stderr
// so stdout stays clean for edited text.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Level = logrus.Level

const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

var std = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	return l
}

func SetLogLevel(level Level) {
	std.SetLevel(level)
}

func GetLogLevel() Level {
	return std.GetLevel()
}

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Debug(format string, args ...any) {
	std.Debugf(format, args...)
}

func Info(format string, args ...any) {
	std.Infof(format, args...)
}

func Warn(format string, args ...any) {
	std.Warnf(format, args...)
}

func Error(format string, args ...any) {
	std.Errorf(format, args...)
}
