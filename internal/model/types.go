package model

import (
	"go/token"
)

// TypeKind classifies a declared type by its underlying type expression.
type TypeKind string

const (
	// KindStruct is a struct type.
	KindStruct TypeKind = "struct"
	// KindEnum is a defined basic type with typed constants declared next to it.
	KindEnum TypeKind = "enum"
	// KindInterface is an interface type.
	KindInterface TypeKind = "interface"
	// KindFunc is a function type.
	KindFunc TypeKind = "func"
	// KindChan is a channel type.
	KindChan TypeKind = "chan"
	// KindNamed is any other defined type (slices, maps, basic types, ...).
	KindNamed TypeKind = "named"
)

// Constructor describes a NewT function declared for a type.
type Constructor struct {
	Name         string
	Params       int  // number of parameters, the variadic one included
	Variadic     bool // last parameter is variadic
	Pointer      bool // first result is *T
	ReturnsError bool // second result is error
}

// Nullary reports whether the constructor can be called without arguments.
func (c Constructor) Nullary() bool {
	return c.Params == 0 || (c.Params == 1 && c.Variadic)
}

// DeclaredType is a type found in a compiled unit.
type DeclaredType struct {
	Package      string
	Name         string
	Kind         TypeKind
	Base         string // underlying type expression, e.g. "struct", "int"
	Generic      bool
	Constructors []Constructor
	Position     token.Position
}

// QualifiedName returns package.Name.
func (t DeclaredType) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}

	return t.Package + "." + t.Name
}

// IsEnum reports whether the type is an enumeration.
func (t DeclaredType) IsEnum() bool {
	return t.Kind == KindEnum
}

// DefaultConstructor returns the constructor used for default construction.
// ok is false when the type declares constructors but none is nullary.
// A nil constructor with ok true means the zero value is used.
func (t DeclaredType) DefaultConstructor() (constructor *Constructor, ok bool) {
	if len(t.Constructors) == 0 {
		return nil, true
	}

	for i := range t.Constructors {
		if t.Constructors[i].Nullary() {
			return &t.Constructors[i], true
		}
	}

	return nil, false
}

// HasDefaultConstructor reports whether an instance can be built without
// arguments.
func (t DeclaredType) HasDefaultConstructor() bool {
	if t.Generic {
		return false
	}

	switch t.Kind {
	case KindEnum, KindInterface, KindFunc, KindChan:
		return false
	}

	_, ok := t.DefaultConstructor()

	return ok
}

// Instance is a value built from a declared type.
type Instance struct {
	Type  DeclaredType
	Value any
}
