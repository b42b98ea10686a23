// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package idl

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

type TreeFormat string

const (
	TreeFormatText  TreeFormat = "text"
	TreeFormatJSON  TreeFormat = "json"
	TreeFormatYAML  TreeFormat = "yaml"
	TreeFormatProto TreeFormat = "proto"
)

// Encode renders the image in the requested format. The JSON, YAML, and
// protobuf forms all share the document layout produced by ToStruct.
func (image *Image) Encode(format TreeFormat) ([]byte, error) {
	switch format {
	case TreeFormatText, "":
		return []byte(image.String()), nil
	case TreeFormatJSON:
		s, err := image.ToStruct()
		if err != nil {
			return nil, err
		}
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	case TreeFormatProto:
		s, err := image.ToStruct()
		if err != nil {
			return nil, err
		}
		return proto.MarshalOptions{Deterministic: true}.Marshal(s)
	case TreeFormatYAML:
		return yaml.Marshal(image.toDocument())
	default:
		return nil, fmt.Errorf("unknown tree format %q", format)
	}
}

func (image *Image) String() string {
	var b strings.Builder
	for _, module := range image.Modules {
		b.WriteString(module.URI)
		b.WriteString("\n")
		writeTree(&b, module.Program, 1)
	}
	return b.String()
}

func writeTree(b *strings.Builder, exprs []Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range exprs {
		switch e := e.(type) {
		case Operator:
			fmt.Fprintf(b, "%sOperator(%s)\n", indent, e.Symbol)
		case Loop:
			fmt.Fprintf(b, "%sLoop\n", indent)
			writeTree(b, e.Body, depth+1)
		}
	}
}

// ToStruct converts the image into a protobuf Struct with one entry per
// module under "modules".
func (image *Image) ToStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(image.toDocument())
}

func (image *Image) toDocument() map[string]interface{} {
	modules := make([]interface{}, 0, len(image.Modules))
	for _, module := range image.Modules {
		modules = append(modules, map[string]interface{}{
			"uri":     module.URI,
			"program": fromExpressions(module.Program),
		})
	}
	return map[string]interface{}{
		"modules": modules,
	}
}

func fromExpressions(exprs []Expression) []interface{} {
	out := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		switch e := e.(type) {
		case Operator:
			out = append(out, map[string]interface{}{"operator": e.Symbol.String()})
		case Loop:
			out = append(out, map[string]interface{}{"loop": fromExpressions(e.Body)})
		}
	}
	return out
}
