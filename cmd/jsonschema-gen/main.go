// Command jsonschema-gen writes the JSON Schemas of toolgate's hook
// documents to disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/safedep/toolgate/schema"
)

const defaultOutputDir = "schema"

func main() {
	outputDir := flag.String("out", defaultOutputDir, "directory to write schema files to")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, name := range schema.Names() {
		data, err := schema.Generate(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate %s schema: %v\n", name, err)
			os.Exit(1)
		}

		data = append(data, '\n')

		path := filepath.Join(*outputDir, name+".schema.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Schema written to %s\n", path)
	}
}
