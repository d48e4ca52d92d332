package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/httputil"
	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/observability"
)

// DefaultEndpoint is the standard sheet-to-graph endpoint.
const DefaultEndpoint = "https://sheets.layerscope.dev/api/graph"

// fetchTimeout bounds one fetch attempt, including connection setup.
const fetchTimeout = 10 * time.Second

// SheetProvider fetches layer graphs from a remote sheet endpoint.
type SheetProvider struct {
	client *http.Client
}

// NewSheetProvider creates a provider with a standard timeout-bounded client.
func NewSheetProvider() *SheetProvider {
	return &SheetProvider{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch requests the graph for req.SheetID and validates the result.
//
// Transient failures (transport errors, timeouts, 5xx responses) are
// retried with exponential backoff. Every terminal failure — network, HTTP
// status, decode, endpoint-reported error, empty layer set — comes back as
// a structured error; no partially-decoded graph ever escapes.
func (p *SheetProvider) Fetch(ctx context.Context, req Request) (*layer.Graph, error) {
	if err := errors.ValidateSheetID(req.SheetID); err != nil {
		return nil, err
	}
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if err := errors.ValidateURL(endpoint); err != nil {
		return nil, err
	}

	fetchURL := fmt.Sprintf("%s?sheet=%s", endpoint, url.QueryEscape(req.SheetID))

	var resp Response
	err := httputil.RetryWithBackoff(ctx, func() error {
		return p.get(ctx, fetchURL, &resp)
	})
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "sheet %s fetch timed out", req.SheetID)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch sheet %s", req.SheetID)
	}

	return graphFromResponse(req.SheetID, resp)
}

func (p *SheetProvider) get(ctx context.Context, fetchURL string, v *Response) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return err
	}

	u := req.URL
	observability.HTTP().OnRequest(ctx, http.MethodGet, u.Host, u.Path)
	start := time.Now()

	resp, err := p.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		return &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("status %d", code)}
	default:
		return fmt.Errorf("status %d", code)
	}
}

// graphFromResponse converts a decoded envelope into a validated graph.
// Endpoint-reported errors and empty layer sets are both terminal.
func graphFromResponse(sheetID string, resp Response) (*layer.Graph, error) {
	if resp.Status != StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = "sheet endpoint reported an error"
		}
		return nil, errors.New(errors.ErrCodeInvalidSheet, "sheet %s: %s", sheetID, msg)
	}
	if resp.Data == nil || len(resp.Data.Layers) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "sheet %s returned no layers", sheetID)
	}

	g := &layer.Graph{Layers: resp.Data.Layers}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	for e := err; e != nil; {
		if t, ok := e.(timeout); ok && t.Timeout() {
			return true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		e = u.Unwrap()
	}
	return false
}

// Ensure SheetProvider implements Provider.
var _ Provider = (*SheetProvider)(nil)
