// Package servers holds the HTTP contract of the order service: the OpenAPI
// document, the request and response models it defines and the echo routing
// that binds path and query parameters before calling a ServerInterface.
package servers

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiDocument []byte

// GetSwagger loads and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	swagger, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}

	if err := swagger.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("openapi document is invalid: %w", err)
	}

	return swagger, nil
}
