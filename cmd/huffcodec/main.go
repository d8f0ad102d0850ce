// Command huffcodec compresses and decompresses files with a static
// Huffman code.
//
// Usage:
//
//     huffcodec -encode FREQ_FILE INPUT_FILE OUTPUT_FILE
//     huffcodec -decode FREQ_FILE INPUT_FILE OUTPUT_FILE
//     huffcodec -info INPUT_FILE
//
// -encode builds the code from the byte frequencies of FREQ_FILE and
// compresses INPUT_FILE into OUTPUT_FILE.  -decode restores INPUT_FILE into
// OUTPUT_FILE; the code is read from the compressed stream itself, so
// FREQ_FILE is accepted for symmetry but not read.  -info prints the code
// and original length stored in a compressed file.
//
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/huffcodec"
	"github.com/chronos-tachyon/huffcodec/internal/logger"
)

const progName = "huffcodec"

type mode int

const (
	modeEncode mode = iota + 1
	modeDecode
	modeInfo
)

type options struct {
	mode     mode
	verbose  bool
	freqPath string
	inPath   string
	outPath  string
}

var errUsage = errors.New("invalid arguments")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		return 2
	}

	log := logger.New(stderr, opts.verbose)
	switch opts.mode {
	case modeEncode:
		err = encodeFile(opts, log)
	case modeDecode:
		err = decodeFile(opts, log)
	case modeInfo:
		err = infoFile(opts, stdout)
	}
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	var encode, decode, info bool

	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&encode, "encode", false, "compress INPUT_FILE using the frequencies of FREQ_FILE")
	fs.BoolVar(&decode, "decode", false, "decompress INPUT_FILE")
	fs.BoolVar(&info, "info", false, "describe the compressed INPUT_FILE")
	fs.BoolVar(&opts.verbose, "v", false, "log progress to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "USAGE:\n")
		fmt.Fprintf(stderr, "  %s -encode FREQ_FILE INPUT_FILE OUTPUT_FILE\n", progName)
		fmt.Fprintf(stderr, "  %s -decode FREQ_FILE INPUT_FILE OUTPUT_FILE\n", progName)
		fmt.Fprintf(stderr, "  %s -info INPUT_FILE\n", progName)
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	var modes int
	for _, set := range [...]bool{encode, decode, info} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintf(stderr, "%s: exactly one of -encode, -decode, -info is required\n", progName)
		fs.Usage()
		return options{}, errUsage
	}

	switch {
	case encode:
		opts.mode = modeEncode
	case decode:
		opts.mode = modeDecode
	default:
		opts.mode = modeInfo
	}

	want := 3
	if opts.mode == modeInfo {
		want = 1
	}
	if fs.NArg() != want {
		fmt.Fprintf(stderr, "%s: expected %d file arguments, got %d\n", progName, want, fs.NArg())
		fs.Usage()
		return options{}, errUsage
	}

	if opts.mode == modeInfo {
		opts.inPath = fs.Arg(0)
	} else {
		opts.freqPath = fs.Arg(0)
		opts.inPath = fs.Arg(1)
		opts.outPath = fs.Arg(2)
	}
	return opts, nil
}

func encodeFile(opts options, log logger.Logger) error {
	weights, err := frequencyFile(opts.freqPath)
	if err != nil {
		return err
	}
	log.Infof("%d distinct symbols in %q", len(weights), opts.freqPath)

	data, err := os.ReadFile(opts.inPath)
	if err != nil {
		return errors.Wrapf(err, "read %q", opts.inPath)
	}

	var e huffcodec.Encoder
	haveCode := len(weights) != 0 || len(data) != 0
	if haveCode {
		if err := e.Init(weights); err != nil {
			return errors.Wrapf(err, "build code from %q", opts.freqPath)
		}
	}

	return writeFile(opts.outPath, func(w io.Writer) error {
		if !haveCode {
			return nil
		}
		n, err := e.EncodeTo(w, data)
		if err != nil {
			return errors.Wrapf(err, "encode %q", opts.inPath)
		}
		log.Infof("encoded %d bytes into %d bytes", len(data), n)
		return nil
	})
}

func decodeFile(opts options, log logger.Logger) error {
	log.Infof("not reading %q: the code is stored in the stream", opts.freqPath)

	f, err := os.Open(opts.inPath)
	if err != nil {
		return errors.Wrapf(err, "open %q", opts.inPath)
	}
	defer f.Close()

	data, err := huffcodec.DecodeFrom(bufio.NewReader(f))
	if err != nil {
		return errors.Wrapf(err, "decode %q", opts.inPath)
	}

	return writeFile(opts.outPath, func(w io.Writer) error {
		_, err := w.Write(data)
		if err == nil {
			log.Infof("decoded %d bytes", len(data))
		}
		return err
	})
}

func infoFile(opts options, stdout io.Writer) error {
	f, err := os.Open(opts.inPath)
	if err != nil {
		return errors.Wrapf(err, "open %q", opts.inPath)
	}
	defer f.Close()

	h, err := huffcodec.ReadHeader(f)
	if err != nil {
		return errors.Wrapf(err, "read header of %q", opts.inPath)
	}
	if h.Root == nil {
		fmt.Fprintf(stdout, "%s: empty stream\n", opts.inPath)
		return nil
	}

	table, err := h.Table()
	if err != nil {
		return errors.Wrapf(err, "read header of %q", opts.inPath)
	}
	fmt.Fprintf(stdout, "%s: %d bytes, %d symbols\n", opts.inPath, h.Length, table.Len())
	_, err = table.Dump(stdout)
	return err
}

func frequencyFile(path string) ([]huffcodec.SymbolWeight, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	weights, err := huffcodec.Frequency(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", path)
	}
	return weights, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %q", path)
	}

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %q", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %q", path)
	}
	return nil
}
