package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format names a program interchange encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("ast: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
	dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("ast: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

// FormatForPath picks the encoding from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unsupported program encoding %q", filepath.Ext(path))
	}
}

// LoadFile reads and decodes a parsed program.
func LoadFile(path string) (*Program, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program %s: %w", path, err)
	}
	program, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load program %s: %w", path, err)
	}
	return program, nil
}

// Parse decodes a program from raw bytes in the given encoding.
func Parse(data []byte, format Format) (*Program, error) {
	var root map[string]any
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&root); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatCBOR:
		if err := cborDecMode.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parse cbor: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported program encoding %q", format)
	}
	if root == nil {
		return nil, decodeErrorf("", "empty program document")
	}
	return DecodeProgram(root)
}

// EncodeCBOR serializes a program in canonical CBOR.
func EncodeCBOR(program *Program) ([]byte, error) {
	return cborEncMode.Marshal(Encode(program))
}

// EncodeJSON serializes a program as indented JSON.
func EncodeJSON(program *Program) ([]byte, error) {
	return json.MarshalIndent(Encode(program), "", "  ")
}
