package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/pipeline"
	"github.com/layerscope/layerscope/pkg/store"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	s := NewServer(runner, store.NewMemoryStore(), log.NewWithOptions(io.Discard, log.Options{}))
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func inlineGraphBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(pipeline.Options{
		Graph: &layer.Graph{Layers: []layer.Layer{
			{Name: "input", Rows: 2, Cols: 2, Shape: layer.ShapeRectangle},
			{Name: "output", Rows: 1, Cols: 3, Shape: layer.ShapeCircle},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestHealthz(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if env := decodeEnvelope(t, resp); env.Status != "success" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestBuildSceneInlineGraph(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/scenes", "application/json",
		bytes.NewReader(inlineGraphBody(t)))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	data, _ := json.Marshal(env.Data)

	var sr sceneResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		t.Fatal(err)
	}
	if sr.Layers != 2 || sr.Nodes != 7 {
		t.Errorf("scene response = %+v", sr)
	}
	if sr.GraphHash == "" {
		t.Error("graph hash missing")
	}
	if len(sr.Traces) == 0 {
		t.Error("traces document missing")
	}
}

func TestBuildSceneErrorEnvelope(t *testing.T) {
	_, ts := testServer(t)

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty body fields", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed json", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"empty inline graph", `{"graph": {"layers": []}}`, http.StatusBadRequest, "EMPTY_GRAPH"},
		{"bad shape", `{"graph": {"layers": [{"name": "l", "rows": 1, "cols": 1, "shape": "blob"}]}}`,
			http.StatusBadRequest, "UNKNOWN_SHAPE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/scenes", "application/json",
				bytes.NewReader([]byte(tc.body)))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
			env := decodeEnvelope(t, resp)
			if env.Status != "error" || env.Code != tc.wantCode {
				t.Errorf("envelope = %+v, want code %s", env, tc.wantCode)
			}
		})
	}
}

func TestGraphPersistenceRoundTrip(t *testing.T) {
	_, ts := testServer(t)
	client := ts.Client()

	g := layer.Graph{Layers: []layer.Layer{
		{Name: "input", Rows: 1, Cols: 2, Shape: layer.ShapeRectangle},
	}}
	body, _ := json.Marshal(g)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/graphs/demo", bytes.NewReader(body))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/v1/graphs/demo")
	if err != nil {
		t.Fatal(err)
	}
	env := decodeEnvelope(t, resp)
	data, _ := json.Marshal(env.Data)
	var loaded layer.Graph
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.LayerCount() != 1 || loaded.Layers[0].Name != "input" {
		t.Errorf("loaded = %+v", loaded)
	}

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/v1/graphs/demo", nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/v1/graphs/demo")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("after delete status = %d, want 404", resp.StatusCode)
	}
	if env := decodeEnvelope(t, resp); env.Code != "GRAPH_NOT_FOUND" {
		t.Errorf("code = %s", env.Code)
	}
}

func TestRequestIDAssigned(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("no request ID header")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	resp, err = ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "caller-id" {
		t.Errorf("request ID = %q, want caller-id", got)
	}
}
