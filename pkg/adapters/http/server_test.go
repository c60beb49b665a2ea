package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/hexfsm"
	"github.com/aretw0/hexfsm/pkg/adapters/memory"
	"github.com/aretw0/hexfsm/pkg/archive"
	"github.com/aretw0/hexfsm/pkg/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const turnstileJSON = `{
  "type": "dfa",
  "name": "turnstile",
  "states": ["locked", "unlocked"],
  "alphabet": ["coin", "push"],
  "initial": "locked",
  "accepting": ["locked"],
  "transitions": [
    {"from": "locked", "input": "coin", "to": "unlocked"},
    {"from": "unlocked", "input": "push", "to": "locked"}
  ]
}`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(hexfsm.New(), memory.NewStore(), nil)
}

func do(t *testing.T, h http.Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestEncodeDecode(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/encode", contentTypeJSON, []byte(turnstileJSON))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var enc EncodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &enc))
	assert.Equal(t, "0002 0000:0003 0000:0000   0000 0000:0000 0001:0000   0000 0001:0001 0000:0000", enc.Hex)
	assert.Contains(t, enc.Labels, "turnstile")

	reqBody, err := json.Marshal(DecodeRequest{Hex: enc.Hex, Labels: enc.Labels})
	require.NoError(t, err)

	w = do(t, h, http.MethodPost, "/decode", contentTypeJSON, reqBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	m, err := interchange.Unmarshal(w.Body.Bytes(), interchange.JSON(false))
	require.NoError(t, err)
	assert.Equal(t, "turnstile", m.Name)
	assert.Equal(t, []string{"locked", "unlocked"}, m.States)
	assert.Equal(t, "locked", m.Initial)
}

func TestEncode_Errors(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/encode", contentTypeJSON, []byte("{"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	invalid := strings.Replace(turnstileJSON, `"initial": "locked"`, `"initial": "ghost"`, 1)
	w = do(t, h, http.MethodPost, "/encode", contentTypeJSON, []byte(invalid))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ghost")
}

func TestDecode_BadRecords(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/decode", contentTypeJSON, []byte(`{"hex": "0000 00"}`))
	assert.Equal(t, http.StatusOK, w.Code, "no complete record decodes to an empty machine")

	strict := NewHandler(hexfsm.New(hexfsm.WithStrictChains(true)), nil, nil)
	w = do(t, strict, http.MethodPost, "/decode", contentTypeJSON, []byte(`{"hex": "0003 0000:0000 0001:0001"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestValidate(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/validate", contentTypeJSON, []byte(turnstileJSON))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid": true}`, w.Body.String())

	broken := strings.Replace(turnstileJSON, `"accepting": ["locked"]`, `"accepting": ["x", "y"]`, 1)
	w = do(t, h, http.MethodPost, "/validate", contentTypeJSON, []byte(broken))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Len(t, resp.Errors, 2)
}

func TestRenderDOT(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/render/dot?title=Gate", contentTypeJSON, []byte(turnstileJSON))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeDOT, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `label="Gate";`)
	assert.Contains(t, w.Body.String(), `"locked" -> "unlocked" [label="coin"];`)
}

func TestMachines_Lifecycle(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPut, "/machines/gate", contentTypeJSON, []byte(turnstileJSON))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, "/machines", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"machines": ["gate"]}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/machines/gate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeZip, w.Header().Get("Content-Type"))
	contents, err := archive.FromBytes(w.Body.Bytes())
	require.NoError(t, err)
	assert.True(t, contents.HasLabels())

	// Re-upload the archive itself under a second name.
	w = do(t, h, http.MethodPut, "/machines/gate-copy", contentTypeZip, w.Body.Bytes())
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, "/machines/gate-copy?format=json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unlocked"`)

	w = do(t, h, http.MethodDelete, "/machines/gate", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/machines/gate", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMachines_Rejections(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPut, "/machines/.hidden", contentTypeJSON, []byte(turnstileJSON))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/machines/junk", contentTypeZip, []byte("not a zip"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	noStore := NewHandler(hexfsm.New(), nil, nil)
	w = do(t, noStore, http.MethodGet, "/machines", "", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestHealthInfoMetrics(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "", nil)
	assert.Contains(t, w.Body.String(), "hexfsm-http")

	do(t, h, http.MethodPost, "/encode", contentTypeJSON, []byte(turnstileJSON))
	do(t, h, http.MethodPost, "/encode", contentTypeJSON, []byte("{"))

	w = do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `hexfsm_conversions_total{op="encode",status="ok"} 1`)
	assert.Contains(t, body, `hexfsm_conversions_total{op="encode",status="client_error"} 1`)
	assert.Contains(t, body, `hexfsm_conversion_duration_seconds_count{op="encode"} 2`)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "ok", statusLabel(0))
	assert.Equal(t, "ok", statusLabel(204))
	assert.Equal(t, "client_error", statusLabel(422))
	assert.Equal(t, "error", statusLabel(500))
}
