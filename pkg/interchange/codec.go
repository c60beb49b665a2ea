package interchange

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Codec provides content-type aware marshaling of a Document.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct {
	pretty bool
}

// JSON returns a JSON codec. Pretty output is indented with two spaces.
func JSON(pretty bool) Codec {
	return &jsonCodec{pretty: pretty}
}

func (c *jsonCodec) ContentType() string {
	return "application/json"
}

func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	if c.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type yamlCodec struct{}

// YAML returns a YAML codec.
func YAML() Codec {
	return &yamlCodec{}
}

func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

type msgpackCodec struct{}

// Msgpack returns a MessagePack codec.
func Msgpack() Codec {
	return &msgpackCodec{}
}

func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// ForExtension selects a codec by file extension, with or without the leading dot.
func ForExtension(ext string, pretty bool) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return JSON(pretty), nil
	case "yaml", "yml":
		return YAML(), nil
	case "msgpack", "mpk":
		return Msgpack(), nil
	default:
		return nil, fmt.Errorf("no interchange codec for extension %q", ext)
	}
}

// Marshal renders m with c.
func Marshal(m *domain.Machine, c Codec) ([]byte, error) {
	data, err := c.Marshal(FromMachine(m))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", c.ContentType(), err)
	}
	return data, nil
}

// Unmarshal reads a machine description with c.
func Unmarshal(data []byte, c Codec) (*domain.Machine, error) {
	var doc Document
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", c.ContentType(), err)
	}
	return doc.ToMachine()
}
