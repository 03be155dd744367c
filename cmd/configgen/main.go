// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// configgen emits the default configuration document as JSON.
//
// Usage:
//
//	configgen                      # print to stdout
//	configgen -o config.json       # write atomically to a file
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ManuGH/geowatch/internal/audit"
	"github.com/ManuGH/geowatch/internal/config"
)

func main() {
	output := flag.String("o", "", "output file (stdout when empty)")
	flag.Parse()

	doc := config.Default()

	if *output == "" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fail(fmt.Errorf("marshal document: %w", err))
		}
		fmt.Println(string(data))
		return
	}

	trail := audit.NewLogger()
	mgr := config.NewManager(*output)
	if err := mgr.Save(doc); err != nil {
		trail.ConfigSave("configgen", *output, "failure")
		fail(fmt.Errorf("write %s: %w", *output, err))
	}
	trail.ConfigSave("configgen", *output, "success")
	fmt.Printf("wrote %s\n", *output)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "configgen: %v\n", err)
	os.Exit(1)
}
