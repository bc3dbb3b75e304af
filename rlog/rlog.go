// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package rlog is the logging façade used throughout rocclient:
// an enable-gated provider interface backed by logrus, so callers get
// structured fields instead of a bare prefix string.
package rlog

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// LogProvider is the pluggable backend. Only the levels this driver
// actually emits are exposed: Debug for wire-level tracing, Warn for
// recoverable device/transport anomalies, Error for exchange failures.
type LogProvider interface {
	Debug(fields logrus.Fields, format string, v ...interface{})
	Warn(fields logrus.Fields, format string, v ...interface{})
	Error(fields logrus.Fields, format string, v ...interface{})
}

// Log wraps a LogProvider with an atomic enable flag, so logging can be
// turned on/off without synchronizing with in-flight exchanges.
type Log struct {
	provider LogProvider
	has      uint32
}

// New returns a Log backed by the package-level default logrus provider.
func New() Log {
	return Log{provider: defaultProvider{logrus.StandardLogger()}, has: 0}
}

// LogMode enables or disables log output.
func (sf *Log) LogMode(enable bool) {
	if enable {
		atomic.StoreUint32(&sf.has, 1)
	} else {
		atomic.StoreUint32(&sf.has, 0)
	}
}

// SetLogProvider swaps the backend; nil is ignored.
func (sf *Log) SetLogProvider(p LogProvider) {
	if p != nil {
		sf.provider = p
	}
}

// Debug logs a wire/exchange trace line with structured fields.
func (sf Log) Debug(fields logrus.Fields, format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Debug(fields, format, v...)
	}
}

// Warn logs a recoverable anomaly.
func (sf Log) Warn(fields logrus.Fields, format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Warn(fields, format, v...)
	}
}

// Error logs a failed exchange or decode.
func (sf Log) Error(fields logrus.Fields, format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Error(fields, format, v...)
	}
}

type defaultProvider struct {
	*logrus.Logger
}

var _ LogProvider = defaultProvider{}

func (sf defaultProvider) Debug(fields logrus.Fields, format string, v ...interface{}) {
	sf.WithFields(fields).Debugf(format, v...)
}

func (sf defaultProvider) Warn(fields logrus.Fields, format string, v ...interface{}) {
	sf.WithFields(fields).Warnf(format, v...)
}

func (sf defaultProvider) Error(fields logrus.Fields, format string, v ...interface{}) {
	sf.WithFields(fields).Errorf(format, v...)
}
