package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatJSON Format = iota
	FormatJSONC
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSONC:
		return "jsonc"
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatOf picks a decoder from the file extension. Anything that is
// not jsonc or yaml is read as plain JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jsonc":
		return FormatJSONC
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type rawObject struct {
	Hash *string `yaml:"hash"`
	Size *uint64 `yaml:"size"`
}

type rawIndex struct {
	Objects map[string]*rawObject `yaml:"objects"`
}

var errMissingObjects = errors.New("missing objects field")

func Parse(data []byte, format Format) (*Index, error) {
	var raw rawIndex
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatJSONC:
		data = jsonc.ToJSON(data)
		fallthrough
	default:
		if err := decodeJSON(data, &raw); err != nil {
			return nil, err
		}
	}
	if raw.Objects == nil {
		return nil, errMissingObjects
	}

	idx := &Index{
		Objects: make(map[string]Object, len(raw.Objects)),
	}
	for p, o := range raw.Objects {
		switch {
		case o == nil:
			return nil, fmt.Errorf("object %q: null entry", p)
		case o.Hash == nil:
			return nil, fmt.Errorf("object %q: missing hash", p)
		case o.Size == nil:
			return nil, fmt.Errorf("object %q: missing size", p)
		}
		idx.Objects[p] = Object{Hash: *o.Hash, Size: *o.Size}
	}
	return idx, nil
}

// decodeJSON fills raw from a JSON document. Keys are matched exactly;
// encoding/json alone would also accept "OBJECTS" or "Hash".
func decodeJSON(data []byte, raw *rawIndex) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	objects, ok := doc["objects"]
	if !ok {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(objects, &entries); err != nil {
		return fmt.Errorf("objects: %w", err)
	}
	if entries == nil {
		return nil
	}

	raw.Objects = make(map[string]*rawObject, len(entries))
	for p, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			return fmt.Errorf("object %q: %w", p, err)
		}
		if fields == nil {
			raw.Objects[p] = nil
			continue
		}
		o := &rawObject{}
		if v, ok := fields["hash"]; ok {
			if err := json.Unmarshal(v, &o.Hash); err != nil {
				return fmt.Errorf("object %q: hash: %w", p, err)
			}
		}
		if v, ok := fields["size"]; ok {
			if err := json.Unmarshal(v, &o.Size); err != nil {
				return fmt.Errorf("object %q: size: %w", p, err)
			}
		}
		raw.Objects[p] = o
	}
	return nil
}

// Encode writes idx in the given format. Used to produce fixtures and
// by tools that build an asset root from a plain directory.
func Encode(idx *Index, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(idx)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
