package report

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"interview-insights-go/internal/types"
)

// Schema describes the Report shape every renderer can rely on. All
// properties are required since Normalize fills defaults.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := reflector.Reflect(&types.Report{})
	schema.Title = "Interview analysis report"
	return schema
}

func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}
