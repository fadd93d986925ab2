// Package schemas embeds the OpenAPI document used for request validation.
package schemas

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3.0 document for the repolens HTTP API.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
