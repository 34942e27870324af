package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	m "go2json.dev/pkg/go2json/internal/model"
	"gopkg.in/yaml.v3"
)

// DocumentWriter serializes materialized documents.
type DocumentWriter interface {
	// Write encodes every document in order. Each document is a mapping from
	// type name to instance that keeps declaration order.
	Write(w io.Writer, format m.Format, documents ...m.Document) error
}

// LocalDocumentWriter writes JSON with encoding/json and YAML with yaml.v3.
type LocalDocumentWriter struct {
	indent int
}

// NewLocalDocumentWriter constructs a LocalDocumentWriter; indent is the number of spaces per level.
func NewLocalDocumentWriter(indent int) *LocalDocumentWriter {
	if indent < 0 {
		indent = 0
	}

	return &LocalDocumentWriter{indent: indent}
}

// Write implements DocumentWriter.
func (d *LocalDocumentWriter) Write(w io.Writer, format m.Format, documents ...m.Document) error {
	switch format {
	case m.FormatJSON, "":
		return d.writeJSON(w, documents)
	case m.FormatYAML:
		return d.writeYAML(w, documents)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (d *LocalDocumentWriter) writeJSON(w io.Writer, documents []m.Document) error {
	for _, document := range documents {
		compact, err := encodeJSONObject(document)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if d.indent > 0 {
			if err := json.Indent(&out, compact, "", strings.Repeat(" ", d.indent)); err != nil {
				return err
			}
		} else {
			out.Write(compact)
		}

		out.WriteByte('\n')

		if _, err := w.Write(out.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

// encodeJSONObject builds the object by hand because encoding a map would
// sort the keys.
func encodeJSONObject(document m.Document) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, instance := range document.Instances {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(instance.Type.Name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(instance.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", instance.Type.QualifiedName(), err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (d *LocalDocumentWriter) writeYAML(w io.Writer, documents []m.Document) error {
	encoder := yaml.NewEncoder(w)
	if d.indent > 0 {
		encoder.SetIndent(d.indent)
	}

	for _, document := range documents {
		root := &yaml.Node{Kind: yaml.MappingNode}

		for _, instance := range document.Instances {
			var value yaml.Node
			if err := value.Encode(instance.Value); err != nil {
				return fmt.Errorf("failed to encode %s: %w", instance.Type.QualifiedName(), err)
			}

			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: instance.Type.Name},
				&value,
			)
		}

		if err := encoder.Encode(root); err != nil {
			return err
		}
	}

	return encoder.Close()
}
