package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// apiDoc serves the rendered document to the swagger UI.
type apiDoc struct {
	json string
}

// ReadDoc implements swag.Swagger.
func (d apiDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// LoadOpenAPI parses and validates the embedded API description and registers
// it with swag so /swagger/index.html can render it.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, apiDoc{json: string(raw)})
	})

	return doc, nil
}
