package jtd

import "fmt"

// NotAnObjectError indicates that a schema node is not a JSON object.
type NotAnObjectError struct {
	Path []string
}

func (e *NotAnObjectError) Error() string {
	return fmt.Sprintf("schema at %q must be an object", Pointer(e.Path))
}

// UnknownKeyError indicates that a schema node carries a key outside the
// JSON Type Definition vocabulary.
type UnknownKeyError struct {
	Path []string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("schema at %q has unknown key %q", Pointer(e.Path), e.Key)
}

// InvalidFormError indicates that the combination of form keywords on a
// schema node does not select exactly one of the eight forms - for example
// "type" alongside "enum", "mapping" without "discriminator", or
// "additionalProperties" on its own.
type InvalidFormError struct {
	Path []string
	Keys []string
}

func (e *InvalidFormError) Error() string {
	return fmt.Sprintf("schema at %q combines keys %v which do not form a valid schema form",
		Pointer(e.Path), e.Keys)
}

// WrongValueTypeError indicates that a schema keyword holds a value of the
// wrong JSON type, such as a non-boolean "nullable".
type WrongValueTypeError struct {
	Path []string
	Key  string
	Want string
}

func (e *WrongValueTypeError) Error() string {
	return fmt.Sprintf("schema at %q: %q must be %s", Pointer(e.Path), e.Key, e.Want)
}

// InvalidTypeError indicates a "type" keyword with a value outside the
// eleven primitive type names.
type InvalidTypeError struct {
	Path  []string
	Value string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("schema at %q has invalid type %q", Pointer(e.Path), e.Value)
}

// EmptyEnumError indicates an "enum" keyword with no values.
type EmptyEnumError struct {
	Path []string
}

func (e *EmptyEnumError) Error() string {
	return fmt.Sprintf("schema at %q has an empty enum", Pointer(e.Path))
}

// DuplicateEnumValueError indicates an "enum" keyword repeating a value.
type DuplicateEnumValueError struct {
	Path  []string
	Value string
}

func (e *DuplicateEnumValueError) Error() string {
	return fmt.Sprintf("schema at %q repeats enum value %q", Pointer(e.Path), e.Value)
}

// SharedPropertyError indicates a property name declared in both
// "properties" and "optionalProperties".
type SharedPropertyError struct {
	Path []string
	Name string
}

func (e *SharedPropertyError) Error() string {
	return fmt.Sprintf("schema at %q declares %q as both required and optional",
		Pointer(e.Path), e.Name)
}

// NonRootDefinitionsError indicates a "definitions" keyword below the
// document root.
type NonRootDefinitionsError struct {
	Path []string
}

func (e *NonRootDefinitionsError) Error() string {
	return fmt.Sprintf("schema at %q declares definitions outside the document root", Pointer(e.Path))
}

// DanglingRefError indicates a "ref" naming no root definition.
type DanglingRefError struct {
	Path []string
	Name string
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("schema at %q refers to undefined definition %q", Pointer(e.Path), e.Name)
}

// EmptyDiscriminatorError indicates a "discriminator" keyword holding an
// empty string.
type EmptyDiscriminatorError struct {
	Path []string
}

func (e *EmptyDiscriminatorError) Error() string {
	return fmt.Sprintf("schema at %q has an empty discriminator", Pointer(e.Path))
}

// EmptyMappingError indicates a "mapping" keyword with no entries.
type EmptyMappingError struct {
	Path []string
}

func (e *EmptyMappingError) Error() string {
	return fmt.Sprintf("schema at %q has an empty mapping", Pointer(e.Path))
}

// NonPropertiesMappingError indicates a mapping value that is not a
// properties-form schema.
type NonPropertiesMappingError struct {
	Path []string
}

func (e *NonPropertiesMappingError) Error() string {
	return fmt.Sprintf("schema at %q must be of the properties form", Pointer(e.Path))
}

// NullableMappingError indicates a mapping value marked nullable. The
// discriminator already decides nullability for the whole form.
type NullableMappingError struct {
	Path []string
}

func (e *NullableMappingError) Error() string {
	return fmt.Sprintf("schema at %q must not be nullable", Pointer(e.Path))
}

// MappingDiscriminatorClashError indicates a mapping value re-declaring the
// discriminator's tag as one of its own properties.
type MappingDiscriminatorClashError struct {
	Path []string
	Tag  string
}

func (e *MappingDiscriminatorClashError) Error() string {
	return fmt.Sprintf("schema at %q re-declares discriminator property %q", Pointer(e.Path), e.Tag)
}

// MaxDepthExceededError is an engine-level failure: following refs during
// validation exceeded the configured depth bound. It is distinct from the
// instance being invalid - the schema's ref cycles make exhaustive checking
// impossible within the bound.
type MaxDepthExceededError struct {
	Definition string
	MaxDepth   int
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("max ref depth %d exceeded resolving definition %q", e.MaxDepth, e.Definition)
}
