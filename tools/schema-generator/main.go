// Command schema-generator writes the JSON schemas of the projects file
// and of its logging section, for editors and CI validation.
package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/logging"
	"github.com/invopop/jsonschema"
	"github.com/spf13/pflag"
)

func main() {
	outputDir := pflag.StringP("output", "o", "schema", "Directory to write the schema files to")
	pflag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	projects, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating projects schema: %v", err)
	}
	write(filepath.Join(*outputDir, "projects.schema.json"), projects)

	loggingData, err := loggingSchema()
	if err != nil {
		log.Fatalf("Error generating logging schema: %v", err)
	}
	write(filepath.Join(*outputDir, "logging.schema.json"), loggingData)
}

// loggingSchema describes the optional 'logging' section; none of its
// fields are required.
func loggingSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&logging.Config{})
	schema.Title = "icdeck logging section"
	schema.Description = "Schema for the 'logging' section of the projects file."
	schema.Required = nil

	return json.MarshalIndent(schema, "", "  ")
}

func write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}
	log.Printf("Generated %s", path)
}
