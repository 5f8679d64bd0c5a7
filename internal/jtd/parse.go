package jtd

import (
	"slices"
)

// formGroups maps each form-selecting key to its form, so that keys of the
// same form are interchangeable when deciding form exclusivity.
var formGroups = map[string]string{
	"ref":                  "ref",
	"type":                 "type",
	"enum":                 "enum",
	"elements":             "elements",
	"properties":           "properties",
	"optionalProperties":   "properties",
	"additionalProperties": "properties",
	"values":               "values",
	"discriminator":        "discriminator",
	"mapping":              "discriminator",
}

// legalKeys is the full JSON Type Definition vocabulary.
var legalKeys = map[string]bool{
	"definitions": true,
	"nullable":    true,
	"metadata":    true,
}

func init() {
	for k := range formGroups {
		legalKeys[k] = true
	}
}

// ParseSchema parses a generic JSON value (the result of unmarshalling a
// schema document) into a Schema tree. It rejects any structural violation
// of RFC 8927 - unknown keys, form-key collisions, malformed enums or
// discriminator mappings, nested definitions, and refs naming no
// definition - before any instance is validated.
func ParseSchema(doc any) (*Schema, error) {
	root, err := parseSchema(doc, true, nil)
	if err != nil {
		return nil, err
	}
	if err := checkRefs(root, root, nil); err != nil {
		return nil, err
	}
	return root, nil
}

func parseSchema(doc any, isRoot bool, path []string) (*Schema, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &NotAnObjectError{Path: slices.Clone(path)}
	}

	for key := range obj {
		if !legalKeys[key] {
			return nil, &UnknownKeyError{Path: slices.Clone(path), Key: key}
		}
	}

	s := &Schema{Form: Empty{}}

	if raw, ok := obj["definitions"]; ok {
		if !isRoot {
			return nil, &NonRootDefinitionsError{Path: slices.Clone(path)}
		}
		defs, ok := raw.(map[string]any)
		if !ok {
			return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "definitions", Want: "an object"}
		}
		s.Definitions = make(map[string]*Schema, len(defs))
		for name, rawDef := range defs {
			def, err := parseSchema(rawDef, false, append(path, "definitions", name))
			if err != nil {
				return nil, err
			}
			s.Definitions[name] = def
		}
	}

	if raw, ok := obj["nullable"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "nullable", Want: "a boolean"}
		}
		s.Nullable = b
	}

	if raw, ok := obj["metadata"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "metadata", Want: "an object"}
		}
		s.Metadata = m
	}

	form, err := parseForm(obj, path)
	if err != nil {
		return nil, err
	}
	s.Form = form

	return s, nil
}

// parseForm decides which of the eight forms the key set selects, and
// parses the keywords of that form.
func parseForm(obj map[string]any, path []string) (Form, error) {
	var present []string
	group := ""
	for key := range obj {
		g, isFormKey := formGroups[key]
		if !isFormKey {
			continue
		}
		present = append(present, key)
		if group != "" && g != group {
			slices.Sort(present)
			return nil, &InvalidFormError{Path: slices.Clone(path), Keys: present}
		}
		group = g
	}
	slices.Sort(present)

	switch group {
	case "":
		return Empty{}, nil
	case "ref":
		return parseRef(obj, path)
	case "type":
		return parseType(obj, path)
	case "enum":
		return parseEnum(obj, path)
	case "elements":
		inner, err := parseSchema(obj["elements"], false, append(path, "elements"))
		if err != nil {
			return nil, err
		}
		return Elements{Schema: inner}, nil
	case "properties":
		return parseProperties(obj, present, path)
	case "values":
		inner, err := parseSchema(obj["values"], false, append(path, "values"))
		if err != nil {
			return nil, err
		}
		return Values{Schema: inner}, nil
	case "discriminator":
		return parseDiscriminator(obj, present, path)
	}
	return nil, &InvalidFormError{Path: slices.Clone(path), Keys: present}
}

func parseRef(obj map[string]any, path []string) (Form, error) {
	name, ok := obj["ref"].(string)
	if !ok {
		return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "ref", Want: "a string"}
	}
	return Ref{Name: name}, nil
}

func parseType(obj map[string]any, path []string) (Form, error) {
	raw, ok := obj["type"].(string)
	if !ok {
		return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "type", Want: "a string"}
	}
	pt, ok := NewPrimitiveType(raw)
	if !ok {
		return nil, &InvalidTypeError{Path: append(slices.Clone(path), "type"), Value: raw}
	}
	return Type{Type: pt}, nil
}

func parseEnum(obj map[string]any, path []string) (Form, error) {
	raw, ok := obj["enum"].([]any)
	if !ok {
		return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "enum", Want: "an array"}
	}
	if len(raw) == 0 {
		return nil, &EmptyEnumError{Path: append(slices.Clone(path), "enum")}
	}

	values := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "enum", Want: "an array of strings"}
		}
		if _, dup := seen[str]; dup {
			return nil, &DuplicateEnumValueError{Path: append(slices.Clone(path), "enum"), Value: str}
		}
		seen[str] = struct{}{}
		values = append(values, str)
	}
	return Enum{Values: values}, nil
}

func parseProperties(obj map[string]any, present []string, path []string) (Form, error) {
	// additionalProperties never selects the form on its own.
	if len(present) == 1 && present[0] == "additionalProperties" {
		return nil, &InvalidFormError{Path: slices.Clone(path), Keys: present}
	}

	form := Properties{}

	if raw, ok := obj["properties"]; ok {
		props, err := parsePropertyMap(raw, "properties", path)
		if err != nil {
			return nil, err
		}
		form.Required = props
	}

	if raw, ok := obj["optionalProperties"]; ok {
		props, err := parsePropertyMap(raw, "optionalProperties", path)
		if err != nil {
			return nil, err
		}
		form.Optional = props
	}

	for name := range form.Required {
		if _, shared := form.Optional[name]; shared {
			return nil, &SharedPropertyError{Path: slices.Clone(path), Name: name}
		}
	}

	if raw, ok := obj["additionalProperties"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "additionalProperties", Want: "a boolean"}
		}
		form.Additional = b
	}

	return form, nil
}

func parsePropertyMap(raw any, keyword string, path []string) (map[string]*Schema, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: keyword, Want: "an object"}
	}
	props := make(map[string]*Schema, len(m))
	for name, rawProp := range m {
		prop, err := parseSchema(rawProp, false, append(path, keyword, name))
		if err != nil {
			return nil, err
		}
		props[name] = prop
	}
	return props, nil
}

func parseDiscriminator(obj map[string]any, present []string, path []string) (Form, error) {
	// Both keywords must appear together.
	if len(present) != 2 {
		return nil, &InvalidFormError{Path: slices.Clone(path), Keys: present}
	}

	tag, ok := obj["discriminator"].(string)
	if !ok {
		return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "discriminator", Want: "a string"}
	}
	if tag == "" {
		return nil, &EmptyDiscriminatorError{Path: append(slices.Clone(path), "discriminator")}
	}

	rawMapping, ok := obj["mapping"].(map[string]any)
	if !ok {
		return nil, &WrongValueTypeError{Path: slices.Clone(path), Key: "mapping", Want: "an object"}
	}
	if len(rawMapping) == 0 {
		return nil, &EmptyMappingError{Path: append(slices.Clone(path), "mapping")}
	}

	mapping := make(map[string]*Schema, len(rawMapping))
	for value, rawSub := range rawMapping {
		subPath := append(slices.Clone(path), "mapping", value)
		sub, err := parseSchema(rawSub, false, subPath)
		if err != nil {
			return nil, err
		}

		props, isProps := sub.Form.(Properties)
		if !isProps {
			return nil, &NonPropertiesMappingError{Path: subPath}
		}
		if sub.Nullable {
			return nil, &NullableMappingError{Path: subPath}
		}
		if _, clash := props.Required[tag]; clash {
			return nil, &MappingDiscriminatorClashError{Path: subPath, Tag: tag}
		}
		if _, clash := props.Optional[tag]; clash {
			return nil, &MappingDiscriminatorClashError{Path: subPath, Tag: tag}
		}

		mapping[value] = sub
	}

	return Discriminator{Tag: tag, Mapping: mapping}, nil
}

// checkRefs is the post-pass ensuring every ref in the fully parsed tree
// names a root definition.
func checkRefs(s, root *Schema, path []string) error {
	for name, def := range s.Definitions {
		if err := checkRefs(def, root, append(path, "definitions", name)); err != nil {
			return err
		}
	}

	switch form := s.Form.(type) {
	case Ref:
		if _, ok := root.Definitions[form.Name]; !ok {
			return &DanglingRefError{Path: append(slices.Clone(path), "ref"), Name: form.Name}
		}
	case Elements:
		return checkRefs(form.Schema, root, append(path, "elements"))
	case Values:
		return checkRefs(form.Schema, root, append(path, "values"))
	case Properties:
		for name, prop := range form.Required {
			if err := checkRefs(prop, root, append(path, "properties", name)); err != nil {
				return err
			}
		}
		for name, prop := range form.Optional {
			if err := checkRefs(prop, root, append(path, "optionalProperties", name)); err != nil {
				return err
			}
		}
	case Discriminator:
		for value, sub := range form.Mapping {
			if err := checkRefs(sub, root, append(path, "mapping", value)); err != nil {
				return err
			}
		}
	}
	return nil
}
