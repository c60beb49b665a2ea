package hexfsm

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/hexfsm/pkg/archive"
	"github.com/aretw0/hexfsm/pkg/codec"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/aretw0/hexfsm/pkg/record"
)

// Converter is the high-level entry point for the hexfsm library.
// It wraps the codec packages and carries the settings shared by every
// conversion. A Converter holds no per-call state and is safe for concurrent use.
type Converter struct {
	logger         *slog.Logger
	parser         labels.Parser
	strictChains   bool
	recordsPerLine int
	includeLabels  bool
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithLabelParser selects the parser used for label files (default: TOMLParser).
func WithLabelParser(p labels.Parser) Option {
	return func(c *Converter) {
		c.parser = p
	}
}

// WithStrictChains makes decoding reject interrupted or unterminated NFA chains.
func WithStrictChains(strict bool) Option {
	return func(c *Converter) {
		c.strictChains = strict
	}
}

// WithRecordsPerLine sets how many records are written on each line of hex text.
func WithRecordsPerLine(n int) Option {
	return func(c *Converter) {
		c.recordsPerLine = n
	}
}

// WithIncludeLabels controls whether packed archives carry labels.toml and Save writes
// the .labels.toml sidecar of a .hex file (default: true).
func WithIncludeLabels(include bool) Option {
	return func(c *Converter) {
		c.includeLabels = include
	}
}

// New creates a Converter with the given options.
func New(opts ...Option) *Converter {
	c := &Converter{
		logger:         slog.New(slog.DiscardHandler),
		parser:         labels.TOMLParser{},
		recordsPerLine: record.DefaultPerLine,
		includeLabels:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "hexfsm")
	return c
}

// Encoded is a machine in wire form together with its label table.
type Encoded struct {
	Records []record.Record
	Labels  *labels.Table
}

// Encode validates m and converts it to records plus the matching label table.
func (c *Converter) Encode(m *domain.Machine) (*Encoded, error) {
	res, err := codec.Encode(m)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Encoded machine", "kind", m.Kind, "states", len(m.States), "records", len(res.Records))
	return &Encoded{Records: res.Records, Labels: res.Labels(m)}, nil
}

// EncodeText is Encode rendered as hex text and label file bytes.
func (c *Converter) EncodeText(m *domain.Machine) (hex string, labelFile []byte, err error) {
	enc, err := c.Encode(m)
	if err != nil {
		return "", nil, err
	}
	labelFile, err = labels.Marshal(enc.Labels)
	if err != nil {
		return "", nil, err
	}
	return c.FormatRecords(enc.Records), labelFile, nil
}

// FormatRecords renders records as hex text using the configured line width.
func (c *Converter) FormatRecords(records []record.Record) string {
	return record.FormatText(records, c.recordsPerLine)
}

// Decode rebuilds a machine from records. table may be nil.
func (c *Converter) Decode(records []record.Record, table *labels.Table) (*domain.Machine, error) {
	opts := []codec.DecodeOption{codec.WithLogger(c.logger)}
	if c.strictChains {
		opts = append(opts, codec.WithStrictChains())
	}
	m, err := codec.Decode(records, table, opts...)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Decoded machine", "kind", m.Kind, "states", len(m.States), "records", len(records))
	return m, nil
}

// DecodeText parses hex text and an optional label file, then decodes them.
// An empty labelFile means no labels.
func (c *Converter) DecodeText(hex string, labelFile []byte) (*domain.Machine, error) {
	records, err := record.Scan(hex)
	if err != nil {
		return nil, err
	}
	table, err := c.ParseLabels(labelFile)
	if err != nil {
		return nil, err
	}
	return c.Decode(records, table)
}

// ParseLabels reads a label file with the configured parser. Blank input yields nil.
func (c *Converter) ParseLabels(data []byte) (*labels.Table, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	table, err := labels.Parse(data, c.parser)
	if err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}
	return table, nil
}

// Pack encodes m into a .fsm archive.
func (c *Converter) Pack(m *domain.Machine) ([]byte, error) {
	hex, labelFile, err := c.EncodeText(m)
	if err != nil {
		return nil, err
	}
	contents := archive.Contents{Machine: []byte(hex + "\n")}
	if c.includeLabels {
		contents.Labels = labelFile
	}
	return archive.Bytes(contents)
}

// Unpack decodes a .fsm archive.
func (c *Converter) Unpack(data []byte) (*domain.Machine, error) {
	contents, err := archive.FromBytes(data)
	if err != nil {
		return nil, err
	}
	return c.DecodeText(string(contents.Machine), contents.Labels)
}
