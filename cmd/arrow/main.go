// Command arrow compiles and runs a single source file.
//
// Usage: arrow src-file
//
// The argument surface is intentionally frozen to that one positional
// path: no flags. Debug tracing is controlled by the ARROW_DEBUG
// environment variable instead (see internal/trace).
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/arrowlang/arrow/compiler"
	"github.com/arrowlang/arrow/config"
	"github.com/arrowlang/arrow/internal/disasm"
	"github.com/arrowlang/arrow/internal/ngi"
	"github.com/arrowlang/arrow/internal/trace"
	"github.com/arrowlang/arrow/vm"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: arrow src-file")
}

func loadFile(name string) (string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrap(err, "read source file")
	}
	return string(b), nil
}

func run() int {
	if len(os.Args) != 2 {
		usage()
		return 1
	}

	src, err := loadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, err := config.Load("arrow.toml")
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "load config"))
		return 1
	}

	var opts []vm.Option
	if cfg.VM.StackSize > 0 {
		opts = append(opts, vm.StackSize(cfg.VM.StackSize))
	}
	if cfg.VM.TableSize > 0 {
		opts = append(opts, vm.TableSize(cfg.VM.TableSize))
	}

	stdout := ngi.NewErrWriter(bufio.NewWriter(os.Stdout))
	opts = append(opts, vm.Output(stdout))

	env, err := vm.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "create vm"))
		return 1
	}
	defer env.Release()

	ch, err := compiler.Compile(src, env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	env.SetChunk(ch)

	trace.Chunk(os.Args[1], func() string {
		var buf bytes.Buffer
		disasm.Chunk(ch, os.Args[1], &buf)
		return buf.String()
	})

	if runErr := env.Run(); runErr != nil {
		flushStdout(stdout)
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	flushStdout(stdout)
	return 0
}

func flushStdout(w *ngi.ErrWriter) {
	w.Flush()
	if w.Err != nil {
		fmt.Fprintln(os.Stderr, w.Err)
	}
}

func main() {
	os.Exit(run())
}
