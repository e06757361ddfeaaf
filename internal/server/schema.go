package server

import (
	"embed"
	"fmt"
	"strings"

	"github.com/khrees2412/cvforge/internal/app"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	searchSchema   = mustSchema("schemas/search.schema.json")
	templateSchema = mustSchema("schemas/template.schema.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// validateBody checks a raw JSON body against schema
func validateBody(schema *gojsonschema.Schema, body []byte) error {
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", app.ErrValidation)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", app.ErrValidation, err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", app.ErrValidation, strings.Join(msgs, "; "))
}
