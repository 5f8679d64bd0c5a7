package jtd

import (
	"encoding/json"
	"errors"
	"maps"
	"math"
	"slices"
	"strconv"
	"time"
)

// ValidateOptions bounds a single Validate call. A zero value for either
// field means unbounded.
type ValidateOptions struct {
	// MaxDepth caps how many ref indirections may be followed along one
	// recursive path before validation aborts with MaxDepthExceededError.
	MaxDepth int

	// MaxErrors caps how many validation errors are collected before the
	// rest of the instance is skipped.
	MaxErrors int
}

// ValidationError locates one structural mismatch: the offending part of
// the instance and the schema rule that rejected it.
type ValidationError struct {
	InstancePath []string
	SchemaPath   []string
}

// InstancePointer renders the instance path as a JSON Pointer.
func (e ValidationError) InstancePointer() string {
	return Pointer(e.InstancePath)
}

// SchemaPointer renders the schema path as a JSON Pointer.
func (e ValidationError) SchemaPointer() string {
	return Pointer(e.SchemaPath)
}

// errMaxErrors unwinds the recursion once MaxErrors errors are collected.
// It never escapes Validate.
var errMaxErrors = errors.New("jtd: max errors reached")

// Validate checks instance against root, which must have been produced by
// ParseSchema. It returns every structural mismatch up to opts.MaxErrors.
// An empty result means the instance is valid.
//
// The returned error is an engine-level failure (MaxDepthExceededError),
// distinct from the instance merely being invalid.
//
// root is never mutated, so one schema may be shared by concurrent
// Validate calls.
func Validate(root *Schema, instance any, opts ValidateOptions) ([]ValidationError, error) {
	st := &vstate{
		root:         root,
		opts:         opts,
		schemaTokens: [][]string{nil},
	}

	if err := st.validate(root, instance, nil); err != nil {
		if errors.Is(err, errMaxErrors) {
			return st.errors, nil
		}
		return nil, err
	}
	return st.errors, nil
}

// vstate tracks one validation call: the current position in the instance,
// the current position in the schema (one token frame per ref followed),
// and the errors collected so far.
type vstate struct {
	root *Schema
	opts ValidateOptions

	instanceTokens []string
	schemaTokens   [][]string

	errors []ValidationError
}

func (st *vstate) pushInstanceToken(t string) {
	st.instanceTokens = append(st.instanceTokens, t)
}

func (st *vstate) popInstanceToken() {
	st.instanceTokens = st.instanceTokens[:len(st.instanceTokens)-1]
}

func (st *vstate) pushSchemaToken(t string) {
	top := len(st.schemaTokens) - 1
	st.schemaTokens[top] = append(st.schemaTokens[top], t)
}

func (st *vstate) popSchemaToken() {
	top := len(st.schemaTokens) - 1
	st.schemaTokens[top] = st.schemaTokens[top][:len(st.schemaTokens[top])-1]
}

// error records a mismatch at the current instance and schema positions.
// It returns errMaxErrors once the error budget is spent.
func (st *vstate) error() error {
	st.errors = append(st.errors, ValidationError{
		InstancePath: slices.Clone(st.instanceTokens),
		SchemaPath:   slices.Clone(st.schemaTokens[len(st.schemaTokens)-1]),
	})
	if st.opts.MaxErrors != 0 && len(st.errors) >= st.opts.MaxErrors {
		return errMaxErrors
	}
	return nil
}

// validate dispatches on the schema's form. parentTag, when non-nil, names
// a discriminator tag the enclosing form has already consumed; the
// properties form must not treat it as an additional member.
func (st *vstate) validate(schema *Schema, instance any, parentTag *string) error {
	if schema.Nullable && instance == nil {
		return nil
	}

	switch form := schema.Form.(type) {
	case Empty:
		return nil
	case Type:
		return st.validateType(form, instance)
	case Enum:
		return st.validateEnum(form, instance)
	case Elements:
		return st.validateElements(form, instance)
	case Properties:
		return st.validateProperties(form, instance, parentTag)
	case Values:
		return st.validateValues(form, instance)
	case Discriminator:
		return st.validateDiscriminator(form, instance)
	case Ref:
		return st.validateRef(form, instance)
	}
	return nil
}

func (st *vstate) validateType(form Type, instance any) error {
	st.pushSchemaToken("type")
	defer st.popSchemaToken()

	ok := false
	switch form.Type {
	case TypeBoolean:
		_, ok = instance.(bool)
	case TypeFloat32, TypeFloat64:
		_, ok = asNumber(instance)
	case TypeString:
		_, ok = instance.(string)
	case TypeTimestamp:
		if s, isString := instance.(string); isString {
			ok = isRFC3339(s)
		}
	default:
		bounds := intRanges[form.Type]
		if n, isNumber := asNumber(instance); isNumber {
			ok = n == math.Trunc(n) && n >= bounds[0] && n <= bounds[1]
		}
	}

	if !ok {
		return st.error()
	}
	return nil
}

func (st *vstate) validateEnum(form Enum, instance any) error {
	st.pushSchemaToken("enum")
	defer st.popSchemaToken()

	s, isString := instance.(string)
	if !isString || !slices.Contains(form.Values, s) {
		return st.error()
	}
	return nil
}

func (st *vstate) validateElements(form Elements, instance any) error {
	st.pushSchemaToken("elements")
	defer st.popSchemaToken()

	arr, isArray := instance.([]any)
	if !isArray {
		return st.error()
	}

	for i, elem := range arr {
		st.pushInstanceToken(strconv.Itoa(i))
		if err := st.validate(form.Schema, elem, nil); err != nil {
			return err
		}
		st.popInstanceToken()
	}
	return nil
}

func (st *vstate) validateProperties(form Properties, instance any, parentTag *string) error {
	obj, isObject := instance.(map[string]any)
	if !isObject {
		// Report a non-object against whichever property keyword the schema
		// actually declares.
		if form.Required != nil {
			st.pushSchemaToken("properties")
		} else {
			st.pushSchemaToken("optionalProperties")
		}
		defer st.popSchemaToken()
		return st.error()
	}

	if form.Required != nil {
		st.pushSchemaToken("properties")
		for _, name := range slices.Sorted(maps.Keys(form.Required)) {
			st.pushSchemaToken(name)
			if v, present := obj[name]; present {
				st.pushInstanceToken(name)
				if err := st.validate(form.Required[name], v, nil); err != nil {
					return err
				}
				st.popInstanceToken()
			} else {
				// A missing member is reported at the instance's own path.
				if err := st.error(); err != nil {
					return err
				}
			}
			st.popSchemaToken()
		}
		st.popSchemaToken()
	}

	if form.Optional != nil {
		st.pushSchemaToken("optionalProperties")
		for _, name := range slices.Sorted(maps.Keys(form.Optional)) {
			if v, present := obj[name]; present {
				st.pushSchemaToken(name)
				st.pushInstanceToken(name)
				if err := st.validate(form.Optional[name], v, nil); err != nil {
					return err
				}
				st.popInstanceToken()
				st.popSchemaToken()
			}
		}
		st.popSchemaToken()
	}

	if !form.Additional {
		for _, name := range slices.Sorted(maps.Keys(obj)) {
			if parentTag != nil && name == *parentTag {
				continue
			}
			_, required := form.Required[name]
			_, optional := form.Optional[name]
			if !required && !optional {
				st.pushInstanceToken(name)
				if err := st.error(); err != nil {
					return err
				}
				st.popInstanceToken()
			}
		}
	}

	return nil
}

func (st *vstate) validateValues(form Values, instance any) error {
	st.pushSchemaToken("values")
	defer st.popSchemaToken()

	obj, isObject := instance.(map[string]any)
	if !isObject {
		return st.error()
	}

	for _, name := range slices.Sorted(maps.Keys(obj)) {
		st.pushInstanceToken(name)
		if err := st.validate(form.Schema, obj[name], nil); err != nil {
			return err
		}
		st.popInstanceToken()
	}
	return nil
}

func (st *vstate) validateDiscriminator(form Discriminator, instance any) error {
	obj, isObject := instance.(map[string]any)
	if !isObject {
		st.pushSchemaToken("discriminator")
		defer st.popSchemaToken()
		return st.error()
	}

	tagValue, present := obj[form.Tag]
	if !present {
		st.pushSchemaToken("discriminator")
		defer st.popSchemaToken()
		return st.error()
	}

	tag, isString := tagValue.(string)
	if !isString {
		st.pushInstanceToken(form.Tag)
		st.pushSchemaToken("discriminator")
		defer st.popSchemaToken()
		defer st.popInstanceToken()
		return st.error()
	}

	sub, mapped := form.Mapping[tag]
	if !mapped {
		st.pushInstanceToken(form.Tag)
		st.pushSchemaToken("mapping")
		defer st.popSchemaToken()
		defer st.popInstanceToken()
		return st.error()
	}

	st.pushSchemaToken("mapping")
	st.pushSchemaToken(tag)
	if err := st.validate(sub, obj, &form.Tag); err != nil {
		return err
	}
	st.popSchemaToken()
	st.popSchemaToken()
	return nil
}

func (st *vstate) validateRef(form Ref, instance any) error {
	// Each frame in schemaTokens past the first is one ref indirection.
	if st.opts.MaxDepth != 0 && len(st.schemaTokens) > st.opts.MaxDepth {
		return &MaxDepthExceededError{Definition: form.Name, MaxDepth: st.opts.MaxDepth}
	}

	// ParseSchema's ref post-pass guarantees the definition exists. The ref
	// substitutes the schema path rather than nesting under "ref".
	st.schemaTokens = append(st.schemaTokens, []string{"definitions", form.Name})
	if err := st.validate(st.root.Definitions[form.Name], instance, nil); err != nil {
		return err
	}
	st.schemaTokens = st.schemaTokens[:len(st.schemaTokens)-1]
	return nil
}

// isRFC3339 reports whether s is an RFC 3339 timestamp. The grammar is
// wider than time.RFC3339: the date/time separators may be lowercase and
// a leap second (a seconds value of 60) is legal. Field widths are fixed
// up through the seconds, so normalising those positions before parsing
// cannot turn an otherwise invalid string into a valid one.
func isRFC3339(s string) bool {
	if len(s) < len("2006-01-02T15:04:05Z") {
		return false
	}

	b := []byte(s)
	if b[10] == 't' {
		b[10] = 'T'
	}
	if b[len(b)-1] == 'z' {
		b[len(b)-1] = 'Z'
	}
	if b[17] == '6' && b[18] == '0' {
		b[17], b[18] = '5', '9'
	}

	_, err := time.Parse(time.RFC3339, string(b))
	return err == nil
}

// asNumber reports the numeric value of a decoded JSON number. Decoders in
// this repository produce float64, but json.Number is accepted for callers
// that decode with UseNumber.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
