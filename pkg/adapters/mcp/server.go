package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/hexfsm"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/interchange"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// FormatURI is the resource describing the record layout.
const FormatURI = "hexfsm://format"

// MachineArgs carries a machine description as a JSON string.
type MachineArgs struct {
	Machine string `json:"machine"`
	Title   string `json:"title,omitempty"`
}

// DecodeArgs carries record text and an optional label file.
type DecodeArgs struct {
	Hex    string `json:"hex"`
	Labels string `json:"labels,omitempty"`
}

// EncodeResult is the structured output of encode_machine.
type EncodeResult struct {
	Hex     string `json:"hex" jsonschema_description:"Records in hex text form"`
	Labels  string `json:"labels" jsonschema_description:"TOML label file mapping ids to names"`
	Records int    `json:"records" jsonschema_description:"Number of records"`
}

// DecodeResult is the structured output of decode_records.
type DecodeResult struct {
	Machine *interchange.Document `json:"machine" jsonschema_description:"The decoded machine description"`
}

// ValidateResult is the structured output of validate_machine.
type ValidateResult struct {
	Valid  bool     `json:"valid" jsonschema_description:"True when the machine can be encoded"`
	Errors []string `json:"errors,omitempty" jsonschema_description:"Every problem found"`
}

// Server exposes a Converter as an MCP server.
type Server struct {
	conv      *hexfsm.Converter
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(conv *hexfsm.Converter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		conv:      conv,
		logger:    logger,
		mcpServer: server.NewMCPServer("hexfsm-mcp", strings.TrimSpace(hexfsm.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	machineParam := mcp.WithString("machine",
		mcp.Required(),
		mcp.Description("Machine description as JSON: type, states, alphabet, initial, accepting, transitions, state_outputs, output_alphabet"),
	)

	s.mcpServer.AddTool(mcp.NewTool("encode_machine",
		mcp.WithDescription("Encode a machine description into hex records and a TOML label file."),
		machineParam,
		mcp.WithOutputSchema[EncodeResult](),
	), mcp.NewStructuredToolHandler(s.handleEncode))

	s.mcpServer.AddTool(mcp.NewTool("decode_records",
		mcp.WithDescription("Decode hex records (optionally with a label file) back into a machine description."),
		mcp.WithString("hex", mcp.Required(), mcp.Description("Record text, e.g. '0000 0000:0000 0001:0000'")),
		mcp.WithString("labels", mcp.Description("Optional TOML label file")),
		mcp.WithOutputSchema[DecodeResult](),
	), mcp.NewStructuredToolHandler(s.handleDecode))

	s.mcpServer.AddTool(mcp.NewTool("render_dot",
		mcp.WithDescription("Render a machine description as a Graphviz DOT digraph."),
		machineParam,
		mcp.WithString("title", mcp.Description("Optional graph title")),
	), mcp.NewTypedToolHandler(s.handleRenderDOT))

	s.mcpServer.AddTool(mcp.NewTool("validate_machine",
		mcp.WithDescription("Check a machine description and report every problem that would stop encoding."),
		machineParam,
		mcp.WithOutputSchema[ValidateResult](),
	), mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) parseMachine(raw string) (*domain.Machine, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("machine is required")
	}
	return interchange.Unmarshal([]byte(raw), interchange.JSON(false))
}

func (s *Server) handleEncode(ctx context.Context, request mcp.CallToolRequest, args MachineArgs) (EncodeResult, error) {
	m, err := s.parseMachine(args.Machine)
	if err != nil {
		return EncodeResult{}, err
	}
	enc, err := s.conv.Encode(m)
	if err != nil {
		s.logger.Warn("MCP encode rejected", "error", err)
		return EncodeResult{}, fmt.Errorf("encode failed: %w", err)
	}
	hex, labelFile, err := s.conv.EncodeText(m)
	if err != nil {
		return EncodeResult{}, fmt.Errorf("encode failed: %w", err)
	}
	return EncodeResult{Hex: hex, Labels: string(labelFile), Records: len(enc.Records)}, nil
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, args DecodeArgs) (DecodeResult, error) {
	m, err := s.conv.DecodeText(args.Hex, []byte(args.Labels))
	if err != nil {
		s.logger.Warn("MCP decode rejected", "error", err)
		return DecodeResult{}, fmt.Errorf("decode failed: %w", err)
	}
	return DecodeResult{Machine: interchange.FromMachine(m)}, nil
}

func (s *Server) handleRenderDOT(ctx context.Context, request mcp.CallToolRequest, args MachineArgs) (*mcp.CallToolResult, error) {
	m, err := s.parseMachine(args.Machine)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := m.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid machine: %v", err)), nil
	}
	dot, err := s.conv.Render(m, hexfsm.FormatDOT, args.Title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(dot), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args MachineArgs) (ValidateResult, error) {
	m, err := s.parseMachine(args.Machine)
	if err != nil {
		return ValidateResult{Valid: false, Errors: []string{err.Error()}}, nil
	}
	res := ValidateResult{Valid: true}
	for _, e := range domain.Errors(m.ValidateAll()) {
		res.Valid = false
		res.Errors = append(res.Errors, e.Error())
	}
	return res, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FormatURI, "Record Format Reference",
		mcp.WithResourceDescription("Layout of hexfsm records, flags and label files"),
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      FormatURI,
				MIMEType: "text/markdown",
				Text:     formatReference,
			},
		}, nil
	})
}

const formatReference = `# hexfsm record format

Each record is five 16-bit fields written in hex: ` + "`TTTT AAAA:BBBB CCCC:DDDD`" + `.

| Type | Name | A | B | C | D |
|---|---|---|---|---|---|
| 0000 | DFA transition | source | input | target | 0 |
| 0001 | Mealy transition | source | input | target | output |
| 0002 | State declaration | state | flags | output+1 or 0 | 0 |
| 0003 | NFA multi-target | source | input | target | 1 if more targets follow, else 0 |

- Input FFFF is an epsilon move.
- Flags: bit 0 initial, bit 1 accepting.
- Ids are positions in the states, alphabet and output_alphabet lists.
- Unknown record types are ignored.

Labels are TOML: ` + "`[fsm]`" + ` holds version, type, name and description;
` + "`[states]`, `[inputs]` and `[outputs]`" + ` map ` + "`0xNNNN`" + ` keys to names.
Without labels, names fall back to S<id>, i<id> and o<id>.
`
