package calculation

import "github.com/sirupsen/logrus"

// Logger receives the engine's progress messages: phase transitions at Info,
// per-year rows at Debug, depletion at Warn.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// The binaries hand the engine a logrus logger or entry directly.
var (
	_ Logger = (*logrus.Logger)(nil)
	_ Logger = (*logrus.Entry)(nil)
)

// NopLogger discards everything. It is the engine default.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
