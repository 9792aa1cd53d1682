package apidocs

import (
	"encoding/json"
	"fmt"

	"github.com/swaggo/swag"
)

// Document returns the registered OpenAPI document with its host set to
// the address the bridge is listening on.
func Document(host string) ([]byte, error) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return nil, fmt.Errorf("read api doc: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse api doc: %w", err)
	}
	if host != "" {
		doc["host"] = host
	}
	return json.MarshalIndent(doc, "", "  ")
}
