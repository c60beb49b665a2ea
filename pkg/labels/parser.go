package labels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Document is the section/key/value view of a label file.
// Top-level keys outside any section are stored under "".
type Document map[string]map[string]string

// Set stores value under section and key, creating the section as needed.
func (d Document) Set(section, key, value string) {
	if d[section] == nil {
		d[section] = make(map[string]string)
	}
	d[section][key] = value
}

// Parser turns label file text into a Document.
type Parser interface {
	Parse(data []byte) (Document, error)
}

// Parser names accepted by ParserFor.
const (
	ParserTOML    = "toml"
	ParserMinimal = "minimal"
)

// ParserFor returns the parser registered under name.
// An empty name selects the TOML parser.
func ParserFor(name string) (Parser, error) {
	switch name {
	case "", ParserTOML:
		return TOMLParser{}, nil
	case ParserMinimal:
		return MinimalParser{}, nil
	default:
		return nil, fmt.Errorf("unknown label parser %q", name)
	}
}

// TOMLParser reads the full TOML grammar.
type TOMLParser struct{}

// Parse decodes data and flattens every table one level deep.
// Scalars are rendered to text; nested tables and arrays are rejected.
func (TOMLParser) Parse(data []byte) (Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}

	doc := make(Document)
	for key, value := range raw {
		section, ok := value.(map[string]any)
		if !ok {
			text, err := scalar(value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			doc.Set("", key, text)
			continue
		}
		doc[key] = make(map[string]string, len(section))
		for k, v := range section {
			text, err := scalar(v)
			if err != nil {
				return nil, fmt.Errorf("key %q in [%s]: %w", k, key, err)
			}
			doc[key][k] = text
		}
	}
	return doc, nil
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	case map[string]any, []any:
		return "", fmt.Errorf("unsupported value of type %T", v)
	default:
		return fmt.Sprint(x), nil
	}
}

// MinimalParser understands the subset of TOML that label files use:
// [section] headers, key = value pairs, quoted or bare values and '#' comments.
type MinimalParser struct{}

// Parse reads data line by line. Lines that are not headers or pairs are ignored.
func (MinimalParser) Parse(data []byte) (Document, error) {
	doc := make(Document)
	section := ""

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			if doc[section] == nil {
				doc[section] = make(map[string]string)
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = unquote(strings.TrimSpace(key))
		doc.Set(section, key, parseValue(strings.TrimSpace(value)))
	}
	return doc, nil
}

// parseValue strips quotes and trailing comments from a raw value.
func parseValue(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '"':
		for i := 1; i < len(v); i++ {
			switch v[i] {
			case '\\':
				i++
			case '"':
				return unquote(v[:i+1])
			}
		}
		return v
	case '\'':
		if end := strings.IndexByte(v[1:], '\''); end >= 0 {
			return v[1 : end+1]
		}
		return v
	}
	if i := strings.Index(v, "#"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	case s[0] == '\'' && s[len(s)-1] == '\'':
		return s[1 : len(s)-1]
	}
	return s
}
