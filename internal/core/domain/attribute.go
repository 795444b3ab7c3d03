package domain

import (
	"fmt"
	"strings"
)

// AttributeRef identifies a picklist field on an object, e.g. Account.Industry.
type AttributeRef struct {
	Object string `json:"object"`
	Field  string `json:"field"`
}

func (a AttributeRef) FullName() string {
	return a.Object + "." + a.Field
}

func (a AttributeRef) String() string {
	return a.FullName()
}

// ParseAttributeRef splits a fully-qualified "Object.Field" name.
func ParseAttributeRef(fullName string) (AttributeRef, error) {
	parts := strings.Split(strings.TrimSpace(fullName), ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return AttributeRef{}, fmt.Errorf("invalid attribute name %q, expected <Object>.<Field>", fullName)
	}
	return AttributeRef{Object: parts[0], Field: parts[1]}, nil
}

// FieldInfo describes a picklist field discovered on an object.
type FieldInfo struct {
	Name  string
	Label string
	Type  string
}

// DisplayName renders the field the way selection prompts show it.
func (f FieldInfo) DisplayName() string {
	if f.Label == "" {
		return f.Name
	}
	return fmt.Sprintf("%s (%s)", f.Label, f.Name)
}
