package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/hexfsm"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/interchange"
	"github.com/aretw0/hexfsm/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 8 << 20

const (
	contentTypeJSON = "application/json"
	contentTypeZip  = "application/zip"
	contentTypeDOT  = "text/vnd.graphviz"
)

// EncodeResponse is the body of POST /encode.
type EncodeResponse struct {
	Hex    string `json:"hex"`
	Labels string `json:"labels"`
}

// DecodeRequest is the body of POST /decode. Labels is optional.
type DecodeRequest struct {
	Hex    string `json:"hex"`
	Labels string `json:"labels,omitempty"`
}

// ValidateResponse is the body of POST /validate.
type ValidateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Server exposes a Converter and an optional MachineStore over HTTP.
type Server struct {
	Converter *hexfsm.Converter
	Store     ports.MachineStore
	Logger    *slog.Logger
	Metrics   *Metrics
}

// NewHandler creates the HTTP handler. store may be nil, in which case the
// /machines routes answer 501.
func NewHandler(conv *hexfsm.Converter, store ports.MachineStore, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Converter: conv,
		Store:     store,
		Logger:    logger,
		Metrics:   NewMetrics(),
	}
	return s.Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	r.Post("/encode", s.Metrics.Instrument("encode", s.Encode))
	r.Post("/decode", s.Metrics.Instrument("decode", s.Decode))
	r.Post("/validate", s.Metrics.Instrument("validate", s.Validate))
	r.Post("/render/dot", s.Metrics.Instrument("render_dot", s.RenderDOT))

	r.Route("/machines", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.Metrics.Instrument("store_list", s.ListMachines))
		r.Get("/{name}", s.Metrics.Instrument("store_get", s.GetMachine))
		r.Put("/{name}", s.Metrics.Instrument("store_put", s.PutMachine))
		r.Delete("/{name}", s.Metrics.Instrument("store_delete", s.DeleteMachine))
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Store == nil {
			s.writeError(w, http.StatusNotImplemented, errors.New("no machine store configured"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Encode handles POST /encode: machine description in, records and labels out.
func (s *Server) Encode(w http.ResponseWriter, r *http.Request) {
	m, ok := s.readMachine(w, r)
	if !ok {
		return
	}
	hex, labelFile, err := s.Converter.EncodeText(m)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, EncodeResponse{Hex: hex, Labels: string(labelFile)})
}

// Decode handles POST /decode: records (and optional labels) in, description out.
func (s *Server) Decode(w http.ResponseWriter, r *http.Request) {
	var body DecodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	m, err := s.Converter.DecodeText(body.Hex, []byte(body.Labels))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, interchange.FromMachine(m))
}

// Validate handles POST /validate and reports every problem at once.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	m, ok := s.readMachine(w, r)
	if !ok {
		return
	}
	resp := ValidateResponse{Valid: true}
	if err := m.ValidateAll(); err != nil {
		resp.Valid = false
		for _, e := range domain.Errors(err) {
			resp.Errors = append(resp.Errors, e.Error())
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// RenderDOT handles POST /render/dot. The optional ?title= is used as graph label.
func (s *Server) RenderDOT(w http.ResponseWriter, r *http.Request) {
	m, ok := s.readMachine(w, r)
	if !ok {
		return
	}
	if err := m.Validate(); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	dot, err := s.Converter.Render(m, hexfsm.FormatDOT, r.URL.Query().Get("title"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeDOT)
	_, _ = io.WriteString(w, dot)
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"machines": names})
}

// GetMachine handles GET /machines/{name}. The archive is returned as-is unless
// ?format=json asks for the decoded description.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	data, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		m, err := s.Converter.Unpack(data)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		s.writeJSON(w, http.StatusOK, interchange.FromMachine(m))
		return
	}

	w.Header().Set("Content-Type", contentTypeZip)
	_, _ = w.Write(data)
}

// PutMachine handles PUT /machines/{name}. A zip body is stored after checking
// it decodes; a JSON description is packed first.
func (s *Server) PutMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return
	}

	var packed []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), contentTypeZip) {
		if _, err := s.Converter.Unpack(body); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		packed = body
	} else {
		m, err := interchange.Unmarshal(body, interchange.JSON(false))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		if packed, err = s.Converter.Pack(m); err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
	}

	if err := s.Store.Save(r.Context(), name, packed); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMachine handles DELETE /machines/{name}.
func (s *Server) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "hexfsm-http",
		"version": strings.TrimSpace(hexfsm.Version),
	})
}

func (s *Server) readMachine(w http.ResponseWriter, r *http.Request) (*domain.Machine, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return nil, false
	}
	m, err := interchange.Unmarshal(data, interchange.JSON(false))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return m, true
}

// statusFor maps domain and store errors to HTTP status codes.
func statusFor(err error) int {
	var shape *domain.ShapeError
	var dup *domain.DuplicateSymbolError
	switch {
	case errors.Is(err, domain.ErrMachineNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFormat),
		errors.Is(err, domain.ErrCapacity),
		errors.Is(err, domain.ErrUndefinedSymbol),
		errors.As(err, &shape),
		errors.As(err, &dup):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("Request failed", "error", err)
	} else {
		s.Logger.Warn("Request rejected", "error", err, "status", status)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
