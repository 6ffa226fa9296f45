// Command fast-linear-predictor reconstructs the internal state of an
// MT19937 generator from a stream of observed outputs and prints the exact
// values the generator will emit next.
//
// Usage: fast-linear-predictor -c count [-b bits] [-low8] [input_file]
//
// The input holds one non-negative decimal integer per line, read from the
// given file or stdin. Predictions are written to stdout, one per line;
// diagnostics go to stderr.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/CherryDT/fast-linear-predictor/predictor"
	"github.com/CherryDT/fast-linear-predictor/sample"
)

var (
	bitsFlag        = flag.Int("b", 64, "sample width in bits: 8, 16, 32, or 64")
	countFlag       = flag.Int("c", 0, "number of future values to predict")
	low8Flag        = flag.Bool("low8", false, "with -b 8, samples are the low byte of each output")
	verboseFlag     = flag.Bool("v", false, "log recovery progress to stderr")
	fingerprintFlag = flag.Bool("fingerprint", false, "print the recovered state fingerprint to stderr")
)

const (
	exitOK  = 0
	exitErr = 1
)

func main() {
	flag.Parse()

	err := realMain(flag.Args())
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain(args []string) error {
	mode, err := sample.ParseMode(*bitsFlag, *low8Flag)
	if err != nil {
		return err
	}
	if *countFlag < 1 {
		return fmt.Errorf("prediction count must be positive, got %d", *countFlag)
	}
	if len(args) > 1 {
		return fmt.Errorf("expected at most one input file, got %d arguments", len(args))
	}

	in := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	opts := options{
		mode:        mode,
		count:       *countFlag,
		verbose:     *verboseFlag,
		fingerprint: *fingerprintFlag,
	}
	return run(opts, in, os.Stdout, os.Stderr)
}

type options struct {
	mode        sample.Mode
	count       int
	verbose     bool
	fingerprint bool
}

func run(opts options, in io.Reader, out, errOut io.Writer) error {
	values, err := readSamples(in, opts.mode)
	if err != nil {
		return err
	}

	cfg := &predictor.Config{Mode: opts.mode}
	if opts.verbose {
		cfg.Logger = func(a ...any) {
			_, _ = fmt.Fprintln(errOut, a...)
		}
	}

	rec, err := predictor.Recover(cfg, values)
	if err != nil {
		return err
	}
	if opts.verbose {
		_, _ = fmt.Fprintln(errOut, message.NewPrinter(language.English).
			Sprintf("state recovered: mode:%s rank:%d equations:%d calls:%d",
				rec.Mode, rec.Rank, rec.Equations, rec.Calls))
	}
	if opts.fingerprint {
		_, _ = fmt.Fprintf(errOut, "state fingerprint: %s\n", rec.Fingerprint())
	}

	w := bufio.NewWriter(out)
	for _, v := range predictor.Predict(rec.Continuation(), opts.mode, opts.count) {
		if _, err := w.WriteString(strconv.FormatUint(v, 10)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readSamples(in io.Reader, mode sample.Mode) ([]uint64, error) {
	sc := bufio.NewScanner(in)
	var values []uint64
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid sample %q", line, text)
		}
		if v > mode.MaxValue() {
			return nil, fmt.Errorf("line %d: sample %d exceeds %d-bit width", line, v, mode.SampleBits())
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
