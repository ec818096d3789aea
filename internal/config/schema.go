package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema builds the JSON schema describing the config file layout.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	return reflector.Reflect(&Config{})
}

// SchemaJSON renders the schema for the -schema flag.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}
