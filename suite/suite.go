package suite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

const (
	FENKey   = "fen"
	MovesKey = "moves"
)

var (
	ErrNotArray   = errors.New("test definitions must be an array")
	ErrMissingFEN = errors.New("test has no fen")
	ErrFENType    = errors.New("fen is not a string")
)

// Suite is the list of test definitions, in file order.
type Suite []*Object

type Format struct {
	Minify bool
	Indent int
}

var DefaultFormat = Format{Indent: 4}

// FEN returns the position a test definition describes.
func FEN(test *Object) (string, error) {
	var fen string
	ok, err := test.Decode(FENKey, &fen)
	if !ok {
		return "", ErrMissingFEN
	}
	if err != nil {
		return "", ErrFENType
	}
	return fen, nil
}

// Read loads test definitions from a JSON file, or YAML when the file has a
// .yaml or .yml extension.
func Read(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

func Parse(data []byte) (Suite, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrNotArray
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse test definitions: %w", err)
	}

	s := make(Suite, 0, len(raw))
	for i, r := range raw {
		test := &Object{}
		if err := test.UnmarshalJSON(r); err != nil {
			return nil, fmt.Errorf("test %d: %w", i, err)
		}
		s = append(s, test)
	}

	return s, nil
}

func (s Suite) Encode(format Format) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if !format.Minify {
		enc.SetIndent("", strings.Repeat(" ", format.Indent))
	}

	tests := s
	if tests == nil {
		tests = Suite{}
	}
	if err := enc.Encode(tests); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write atomically replaces path with the encoded suite.
func Write(path string, s Suite, format Format) error {
	data, err := s.Encode(format)
	if err != nil {
		return fmt.Errorf("encode suite: %w", err)
	}

	pending, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
