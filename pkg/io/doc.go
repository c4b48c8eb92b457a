// Package io reads and writes mind-map input documents.
//
// # Formats
//
// A document is a nested topic object:
//
//	{
//	  "topic": "Launch",
//	  "children": [
//	    {"topic": "Marketing", "url": "https://example.com"},
//	    {"topic": "Engineering", "direction": "left", "children": [...]}
//	  ]
//	}
//
// The same structure is accepted as YAML:
//
//	topic: Launch
//	children:
//	  - topic: Marketing
//	    url: https://example.com
//	  - topic: Engineering
//	    direction: left
//
// JSON is decoded with github.com/goccy/go-json and YAML with
// gopkg.in/yaml.v3. The result is plain decoded data (map[string]any,
// []any, scalars) ready for the engine; structural validation happens when
// the engine builds its tree.
//
// # Reading
//
// Use [ReadFile] to read a file whose format is inferred from its extension
// (.json, .yaml, .yml), or [Decode] with an explicit [Format] for any
// io.Reader:
//
//	data, err := io.ReadFile("plan.yaml")
//
// # Writing
//
// [Encode] and [WriteFile] write decoded data back out, which is how the CLI
// converts between formats.
package io
