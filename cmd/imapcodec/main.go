// Command imapcodec reads IMAP messages from the standard input, one line at
// a time, and prints the decoded messages along with their re-encoded wire
// form.
//
// Lines are terminated with CRLF before being decoded. When a command
// announces a synchronizing literal, a continuation request is printed and
// the literal data is read from the next lines.
package main

import (
	"flag"
	"log"
	"os"
)

var (
	configPath     string
	mode           string
	maxLiteralSize uint
	debug          bool
)

func main() {
	flag.StringVar(&configPath, "config", "", "TOML configuration file")
	flag.StringVar(&mode, "mode", modeCommand, "Kind of messages to decode: greeting, command or response")
	flag.UintVar(&maxLiteralSize, "max-literal-size", 0, "Maximum literal size in bytes, zero for no limit")
	flag.BoolVar(&debug, "debug", false, "Print the fragments of re-encoded messages")
	flag.Parse()

	cfg := defaultConfig()
	if configPath != "" {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Flags set on the command line override the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = mode
		case "max-literal-size":
			cfg.MaxLiteralSize = uint32(maxLiteralSize)
		case "debug":
			cfg.Debug = debug
		}
	})

	r, err := newREPL(&cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := r.run(os.Stdin); err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
}
