// Package validator provides interfaces and types for JSON Schema
// validation, used to check this tool's own configuration documents.
package validator

// A JSONDocument is a parsed JSON document - i.e. the result of
// json.Unmarshal into a generic value.
type JSONDocument interface{}

// A JSONSchema is a parsed JSON document representing a JSON Schema. A
// Compiler must compile the JSONSchema before use, which surfaces any
// schema issues.
type JSONSchema JSONDocument

// Validator represents something which can validate a JSON document.
type Validator interface {
	// Validate validates a JSON document.
	Validate(v JSONDocument) error
}

// Compiler defines a JSON Schema compiler.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler under the given ID.
	// An error is produced if the JSONSchema cannot be added.
	AddSchema(id string, data JSONSchema) error

	// Compile creates a Validator from the JSONSchema previously added with
	// the given ID. An error is produced if it cannot be compiled.
	Compile(id string) (Validator, error)
}
