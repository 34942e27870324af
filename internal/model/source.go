// Package model defines the data structures shared by the go2json pipeline.
package model

// Path represents a file system path or a storage URL.
type Path string

// DefaultUnitName is the synthetic file name given to snippets that do not
// come from a file.
const DefaultUnitName = "input.go"

// SourceUnit is a snippet of Go source describing one or more types.
type SourceUnit struct {
	Name string
	Text string
}

// NewSourceUnit builds a SourceUnit, falling back to DefaultUnitName.
func NewSourceUnit(name, text string) SourceUnit {
	if name == "" {
		name = DefaultUnitName
	}

	return SourceUnit{Name: name, Text: text}
}

// ImportSet is an ordered list of import paths.
type ImportSet []string

// Contains reports whether path is part of the set.
func (s ImportSet) Contains(path string) bool {
	for _, candidate := range s {
		if candidate == path {
			return true
		}
	}

	return false
}

// RequiredImports lists the imports every compiled unit gets, so snippets can
// use common types such as time.Time or json.RawMessage without declaring them.
var RequiredImports = ImportSet{
	"time",
	"container/list",
	"encoding/json",
	"sort",
	"strings",
}

// ReferenceSet is the fixed list of standard-library packages a compiled unit
// may import.
type ReferenceSet []string

// Allows reports whether the import path is part of the reference set.
func (r ReferenceSet) Allows(path string) bool {
	return ImportSet(r).Contains(path)
}

// DefaultReferenceSet is the reference set used by the CLI.
var DefaultReferenceSet = ReferenceSet{
	"bytes",
	"container/list",
	"database/sql",
	"encoding/json",
	"encoding/xml",
	"errors",
	"fmt",
	"math",
	"math/big",
	"net/url",
	"sort",
	"strconv",
	"strings",
	"sync",
	"time",
	"unicode/utf8",
}
