// Package trace provides opt-in execution tracing. Tracing is gated by the
// ARROW_DEBUG environment variable rather than a command-line flag, since
// the CLI's argument surface is frozen to a single positional source path.
package trace

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if os.Getenv("ARROW_DEBUG") == "1" {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

// Enabled reports whether debug tracing is active.
func Enabled() bool { return log.IsLevelEnabled(logrus.DebugLevel) }

// Chunk logs a disassembled chunk under name, formatted by render, but only
// when tracing is enabled; render is not called otherwise.
func Chunk(name string, render func() string) {
	if !Enabled() {
		return
	}
	log.Debugf("compiled chunk %q:\n%s", name, render())
}

// Emit logs one instruction as it is appended to a chunk: mnemonic alone,
// or mnemonic plus operand when the instruction carries one.
func Emit(mnemonic string, hasOperand bool, operand int) {
	if !Enabled() {
		return
	}
	if hasOperand {
		log.Debugf("emit %s %d", mnemonic, operand)
	} else {
		log.Debugf("emit %s", mnemonic)
	}
}

// Stack logs the current evaluation stack depth and the instruction
// pointer before an instruction is decoded.
func Stack(ip int, depth int) {
	if !Enabled() {
		return
	}
	log.Debugf("ip=%04d stack_depth=%d", ip, depth)
}

// RuntimeError logs err at warn level when tracing is enabled; it is also
// reported to the user on standard error by the caller, so this exists only
// to fold runtime failures into the same structured log stream as
// compile-time tracing.
func RuntimeError(err error) {
	if !Enabled() {
		return
	}
	log.WithError(err).Warn("run failed")
}
