// Package jtd implements the JSON Type Definition (RFC 8927) schema model
// and validation engine.
//
// A schema document is parsed once with ParseSchema into an immutable tree,
// which may then be shared read-only across any number of Validate calls.
package jtd

// Schema is one node of a parsed JSON Type Definition schema tree.
//
// Definitions is only populated on a document root; ParseSchema rejects
// nested occurrences. Metadata is carried through unmodified and ignored by
// validation.
type Schema struct {
	Definitions map[string]*Schema
	Metadata    map[string]any
	Nullable    bool
	Form        Form
}

// Form is the mutually exclusive shape category of a schema node. Exactly
// one of the eight variants below is assigned to every parsed schema.
type Form interface {
	isForm()
}

// Empty is the empty form. It matches any instance.
type Empty struct{}

// Type matches instances of a single primitive type.
type Type struct {
	Type PrimitiveType
}

// Enum matches string instances drawn from a fixed, non-empty set.
type Enum struct {
	Values []string
}

// Elements matches arrays whose every element matches Schema.
type Elements struct {
	Schema *Schema
}

// Properties matches objects with a fixed set of required and optional
// members. Required and Optional are nil when the corresponding keyword was
// absent from the document, which is how an explicitly empty map is told
// apart from an undeclared one.
type Properties struct {
	Required   map[string]*Schema
	Optional   map[string]*Schema
	Additional bool
}

// Values matches objects whose every member value matches Schema.
type Values struct {
	Schema *Schema
}

// Discriminator matches objects carrying a string member named Tag whose
// value selects the Properties-form schema in Mapping the object must match.
type Discriminator struct {
	Tag     string
	Mapping map[string]*Schema
}

// Ref delegates to a definition of the root schema, resolved by name at
// validation time.
type Ref struct {
	Name string
}

func (Empty) isForm()         {}
func (Type) isForm()          {}
func (Enum) isForm()          {}
func (Elements) isForm()      {}
func (Properties) isForm()    {}
func (Values) isForm()        {}
func (Discriminator) isForm() {}
func (Ref) isForm()           {}

// PrimitiveType is the value of the "type" keyword in a type-form schema.
type PrimitiveType string

const (
	// TypeBoolean matches true or false.
	TypeBoolean PrimitiveType = "boolean"

	// TypeFloat32 matches any JSON number. The distinction from float64 is
	// informative only and not enforced by validation.
	TypeFloat32 PrimitiveType = "float32"

	// TypeFloat64 matches any JSON number.
	TypeFloat64 PrimitiveType = "float64"

	// TypeInt8 matches a JSON number with no fractional part within the
	// range of an int8. The remaining integer types follow the same rule for
	// their respective bit ranges.
	TypeInt8   PrimitiveType = "int8"
	TypeUint8  PrimitiveType = "uint8"
	TypeInt16  PrimitiveType = "int16"
	TypeUint16 PrimitiveType = "uint16"
	TypeInt32  PrimitiveType = "int32"
	TypeUint32 PrimitiveType = "uint32"

	// TypeString matches any JSON string.
	TypeString PrimitiveType = "string"

	// TypeTimestamp matches a JSON string holding an RFC 3339 timestamp.
	TypeTimestamp PrimitiveType = "timestamp"
)

// intRanges holds the inclusive bounds enforced for the integer types.
var intRanges = map[PrimitiveType][2]float64{
	TypeInt8:   {-128, 127},
	TypeUint8:  {0, 255},
	TypeInt16:  {-32768, 32767},
	TypeUint16: {0, 65535},
	TypeInt32:  {-2147483648, 2147483647},
	TypeUint32: {0, 4294967295},
}

// NewPrimitiveType returns the PrimitiveType for s, and false if s is not
// one of the eleven type keyword values.
func NewPrimitiveType(s string) (PrimitiveType, bool) {
	switch PrimitiveType(s) {
	case TypeBoolean, TypeFloat32, TypeFloat64,
		TypeInt8, TypeUint8, TypeInt16, TypeUint16, TypeInt32, TypeUint32,
		TypeString, TypeTimestamp:
		return PrimitiveType(s), true
	default:
		return "", false
	}
}
