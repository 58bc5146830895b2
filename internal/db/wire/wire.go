// Package wire decodes the REST response bodies shared by OpenSearch and
// Elasticsearch and classifies their errors into db sentinels.
package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kailas-cloud/seekr/internal/db"
)

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Score  *float64        `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Suggest map[string][]struct {
		Options []struct {
			Text string `json:"text"`
		} `json:"options"`
	} `json:"suggest"`
}

// DecodeSearch parses a search response. Suggestion options are flattened in engine order.
func DecodeSearch(body io.Reader) (*db.SearchResult, error) {
	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &db.SearchResult{
		Took:  resp.Took,
		Total: resp.Hits.Total.Value,
		Hits:  make([]db.Hit, 0, len(resp.Hits.Hits)),
	}
	for _, h := range resp.Hits.Hits {
		hit := db.Hit{ID: h.ID, Source: h.Source}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		out.Hits = append(out.Hits, hit)
	}
	for _, entries := range resp.Suggest {
		for _, e := range entries {
			for _, o := range e.Options {
				out.Suggestions = append(out.Suggestions, o.Text)
			}
		}
	}
	return out, nil
}

type getResponse struct {
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// DecodeGet parses a get-document response, returning the _source.
func DecodeGet(body io.Reader) ([]byte, error) {
	var resp getResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode get response: %w", err)
	}
	if !resp.Found {
		return nil, db.ErrDocumentNotFound
	}
	return resp.Source, nil
}

type errorResponse struct {
	Error  json.RawMessage `json:"error"`
	Status int             `json:"status"`
}

type errorDetail struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// ParseError extracts error type and reason from an error body.
// The engine sends either {"error":{"type":..,"reason":..}} or {"error":"text"}.
func ParseError(body io.Reader) (errType, reason string) {
	raw, err := io.ReadAll(body)
	if err != nil || len(raw) == 0 {
		return "", ""
	}
	var resp errorResponse
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Error) == 0 {
		return "", ""
	}
	var detail errorDetail
	if err := json.Unmarshal(resp.Error, &detail); err == nil {
		return detail.Type, detail.Reason
	}
	var text string
	if err := json.Unmarshal(resp.Error, &text); err == nil {
		return "", text
	}
	return "", ""
}

// Classify converts a non-2xx response into a *db.Error wrapping the matching sentinel.
func Classify(op string, status int, body io.Reader) error {
	errType, reason := ParseError(body)
	e := &db.Error{Op: op, Status: status, Type: errType, Reason: reason}

	switch {
	case errType == "resource_already_exists_exception":
		e.Err = db.ErrIndexExists
	case errType == "index_not_found_exception":
		e.Err = db.ErrIndexNotFound
	case status == http.StatusNotFound:
		e.Err = db.ErrDocumentNotFound
	case status == http.StatusTooManyRequests,
		status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		e.Err = db.ErrUnavailable
	default:
		e.Err = db.ErrRejected
	}
	return e
}

// UpdateBody wraps partial fields in a partial-update request: {"doc":{...}}.
func UpdateBody(partial []byte) []byte {
	out := make([]byte, 0, len(partial)+8)
	out = append(out, `{"doc":`...)
	out = append(out, partial...)
	return append(out, '}')
}
