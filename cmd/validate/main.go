// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// validate is a CLI tool to validate geowatch JSON configuration documents.
//
// Usage:
//
//	validate -f config.json
//	validate --file config.json
//
// Exit codes:
//   - 0: Configuration is valid
//   - 1: Configuration is invalid (parse or validation error)
//   - 2: Usage error (missing required flag)
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ManuGH/geowatch/internal/config"
	"github.com/ManuGH/geowatch/internal/validate"
)

var Version = "dev"

func main() {
	var file string
	var showVersion bool

	flag.StringVar(&file, "file", "", "path to JSON configuration document")
	flag.StringVar(&file, "f", "", "path to JSON configuration document (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(Version)
		os.Exit(0)
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  validate -f config.json")
		fmt.Fprintln(os.Stderr, "  validate --file config.json")
		os.Exit(2)
	}

	// Parse the document (strict JSON parsing, no defaults or env overrides)
	doc, err := config.LoadFileDocument(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error in %s:\n", file)
		fmt.Fprintf(os.Stderr, "  %v\n", err)
		os.Exit(1)
	}

	// Validate configuration (business logic validation, all errors reported)
	if err := config.Validate(doc); err != nil {
		fmt.Fprintf(os.Stderr, "Validation error in %s:\n", file)
		var verr validate.ValidationError
		if errors.As(err, &verr) {
			for _, e := range verr.Errors() {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", e.Field, e.Message)
			}
		} else {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("✓ %s is valid\n", file)
}
