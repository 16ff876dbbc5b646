package contracts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"rentwise/internal/core/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Payload schema names accepted by Validate.
const (
	SchemaPropertyCreate = "property-create"
	SchemaPropertyUpdate = "property-update"
	SchemaProfileUpdate  = "profile-update"
	SchemaChangePassword = "change-password"
	SchemaRegister       = "register"
)

const schemaBaseURL = "https://rentwise.dev/schemas/"

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	names := []string{
		SchemaPropertyCreate,
		SchemaPropertyUpdate,
		SchemaProfileUpdate,
		SchemaChangePassword,
		SchemaRegister,
	}

	for _, name := range names {
		file, err := schemaFS.Open(fmt.Sprintf("schemas/%s.v1.json", name))
		if err != nil {
			log.Fatalf("failed to open embedded schema %s: %v", name, err)
		}
		url := fmt.Sprintf("%s%s/v1.json", schemaBaseURL, name)
		if err := compiler.AddResource(url, file); err != nil {
			log.Fatalf("failed to add schema resource %s: %v", name, err)
		}
	}

	for _, name := range names {
		url := fmt.Sprintf("%s%s/v1.json", schemaBaseURL, name)
		schema, err := compiler.Compile(url)
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", name, err)
		}
		compiledSchemas[name] = schema
	}
}

// Validate checks a request body against the named payload schema.
// Violations come back as *domain.ValidationError with one entry per
// offending field.
func Validate(name string, body []byte) error {
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("schema '%s' not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		ve := &domain.ValidationError{}
		ve.Add("body", "request body is not valid JSON")
		return ve
	}

	if err := schema.Validate(v); err != nil {
		var schemaErr *jsonschema.ValidationError
		if errors.As(err, &schemaErr) {
			return toValidationError(schemaErr)
		}
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}

	return nil
}

// toValidationError flattens the cause tree into per-field messages.
func toValidationError(schemaErr *jsonschema.ValidationError) *domain.ValidationError {
	ve := &domain.ValidationError{}
	collectCauses(schemaErr, ve)
	if !ve.HasErrors() {
		ve.Add("body", schemaErr.Message)
	}
	return ve
}

func collectCauses(err *jsonschema.ValidationError, ve *domain.ValidationError) {
	if len(err.Causes) == 0 {
		ve.Add(instanceField(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectCauses(cause, ve)
	}
}

// instanceField converts a JSON pointer like "/location/city" into the
// dotted field name "location.city".
func instanceField(location string) string {
	trimmed := strings.Trim(location, "/")
	if trimmed == "" {
		return "body"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}
