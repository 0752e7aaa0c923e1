// Command sniff detects the dialect of a CSV file and prints a structural
// description of the table.
//
// Usage:
//
//	sniff [flags] [file]
//
// Reads from stdin when no file is given. Flags override values from the
// optional YAML config file (-config).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shapestone/shape-sniff/internal/sample"
	"github.com/shapestone/shape-sniff/pkg/sniff"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sniff: ")

	var (
		configPath = flag.String("config", "", "path to YAML config file")
		records    = flag.Int("records", 0, "bound detection to the first N records")
		byteLimit  = flag.Int("bytes", 0, "bound detection to the first N bytes")
		all        = flag.Bool("all", false, "use the whole input")
		dateFormat = flag.String("date-format", "", "ambiguous date reading: mdy or dmy")
		delimiter  = flag.String("delimiter", "", "force the delimiter (single character, or \\t)")
		quote      = flag.String("quote", "", "force the quote: a single character or none")
		header     = flag.String("header", "", "force header presence: true or false")
		format     = flag.String("format", "", "output format: text or json")
	)
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		fileCfg, err := LoadConfig(*configPath)
		if err != nil {
			log.Println(err)
			os.Exit(2)
		}
		cfg.Apply(fileCfg)
	}
	cfg.Apply(Config{
		SampleRecords: *records,
		SampleBytes:   *byteLimit,
		DateFormat:    *dateFormat,
		Delimiter:     *delimiter,
		Quote:         *quote,
		Format:        *format,
	})

	opts, err := buildOptions(cfg, *all, *header)
	if err != nil {
		log.Println(err)
		os.Exit(2)
	}

	var result *sample.Result
	if flag.NArg() > 0 {
		result, err = sample.ReadFile(flag.Arg(0), cfg.SampleBytes)
	} else {
		result, err = sample.Read(os.Stdin, cfg.SampleBytes)
	}
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}

	meta, err := sniff.Sniff(result.Data, opts)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	// The library judges the buffer it was handed; the acquisition layer
	// knows whether transcoding happened.
	meta.IsUTF8 = result.IsUTF8

	switch cfg.Format {
	case "json":
		err = writeJSON(os.Stdout, meta)
	case "text":
		err = writeText(os.Stdout, meta)
	default:
		log.Printf("unknown output format %q", cfg.Format)
		os.Exit(2)
	}
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// buildOptions translates the merged CLI configuration into sniff options.
func buildOptions(cfg Config, all bool, header string) (sniff.Options, error) {
	opts := sniff.DefaultOptions()

	switch {
	case all:
		opts.SampleSize = sniff.SampleAll()
	case cfg.SampleBytes > 0:
		opts.SampleSize = sniff.SampleBytes(cfg.SampleBytes)
	case cfg.SampleRecords > 0:
		opts.SampleSize = sniff.SampleRecords(cfg.SampleRecords)
	}

	switch cfg.DateFormat {
	case "", "mdy":
		opts.DatePreference = sniff.DateMDY
	case "dmy":
		opts.DatePreference = sniff.DateDMY
	default:
		return opts, fmt.Errorf("unknown date format %q (want mdy or dmy)", cfg.DateFormat)
	}

	if cfg.Delimiter != "" {
		d, err := parseByteFlag(cfg.Delimiter)
		if err != nil {
			return opts, fmt.Errorf("delimiter: %v", err)
		}
		opts.ForceDelimiter = d
	}

	switch cfg.Quote {
	case "":
	case "none":
		q := sniff.NoQuote()
		opts.ForceQuote = &q
	default:
		c, err := parseByteFlag(cfg.Quote)
		if err != nil {
			return opts, fmt.Errorf("quote: %v", err)
		}
		q := sniff.QuoteChar(c)
		opts.ForceQuote = &q
	}

	switch header {
	case "":
	case "true":
		t := true
		opts.ForceHasHeader = &t
	case "false":
		f := false
		opts.ForceHasHeader = &f
	default:
		return opts, fmt.Errorf("header must be true or false, got %q", header)
	}

	return opts, nil
}

// parseByteFlag reads a single-byte flag value, accepting the escape \t for
// tab.
func parseByteFlag(s string) (byte, error) {
	if s == `\t` {
		return '\t', nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("want a single character, got %q", s)
	}
	return s[0], nil
}
