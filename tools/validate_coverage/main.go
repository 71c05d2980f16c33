// Coverage Validator checks that every documented test requirement is
// actually implemented.
//
// The tool scans a Go test file for declared Test functions and compares
// them against an expected-test inventory, reporting missing and
// undocumented tests per category. This validates requirement coverage, not
// line coverage: a requirement counts as covered only when its documented
// test exists.
//
// Usage:
//
//	go run ./tools/validate_coverage
//	go run ./tools/validate_coverage -v
//	go run ./tools/validate_coverage --json
//
// Configuration:
//
//	-file: Optional. Test source file to scan (default: the manifest's file)
//	-manifest: Optional. YAML inventory replacing the built-in one
//	-v, --verbose: Optional. List every expected test under satisfied categories
//	--json: Optional. Append the machine-readable summary to the report
//
// Exit status is 0 when every category is fully implemented and no
// undocumented tests exist, 1 otherwise. A missing or unparsable test file is
// fatal and produces no summary.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/patrickwarner/helloserve/internal/coverage"
)

func main() {
	var verbose bool
	var (
		manifestPath = flag.String("manifest", "", "YAML manifest replacing the built-in expected-test inventory")
		testFile     = flag.String("file", "", "Test source file to scan (defaults to the manifest's file)")
		jsonOut      = flag.Bool("json", false, "Output the machine-readable summary as JSON")
	)
	flag.BoolVar(&verbose, "verbose", false, "Show detailed test listing")
	flag.BoolVar(&verbose, "v", false, "Show detailed test listing (shorthand)")
	flag.Parse()

	manifest := coverage.DefaultManifest()
	if *manifestPath != "" {
		m, err := coverage.LoadManifest(*manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
			os.Exit(1)
		}
		manifest = m
	}

	file := *testFile
	if file == "" {
		file = manifest.File
	}

	implemented, err := coverage.ScanTestFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: test file %s: %v\n", file, err)
		os.Exit(1)
	}

	result := coverage.Validate(manifest, implemented)
	coverage.WriteReport(os.Stdout, manifest, result, verbose)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding summary: %v\n", err)
			os.Exit(1)
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
}
