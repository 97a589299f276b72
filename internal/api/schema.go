package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// A missing or null code is left to the conversion service so that it
// reports "No code provided." rather than a schema violation. model is
// unconstrained: any value that is not a supported id uses the default.
const convertRequestSchema = `{
	"type": "object",
	"properties": {
		"code": {"type": ["string", "null"]}
	}
}`

var convertSchema = mustSchema(convertRequestSchema)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// validateConvertRequest checks that body is a JSON object with a string
// or null code.
func validateConvertRequest(body []byte) error {
	result, err := convertSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
