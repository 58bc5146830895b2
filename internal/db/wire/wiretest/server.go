// Package wiretest provides an in-memory fake of the search engine REST API
// for driver tests.
package wiretest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// Request is a recorded call to the fake server.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// Server emulates the subset of the REST API used by the HTTP drivers.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	indices  map[string]map[string]json.RawMessage
	headers  map[string]string
	requests []Request
	failures []failure
}

type failure struct {
	status int
	body   string
}

// NewServer starts a fake engine. headers are added to every response.
func NewServer(t *testing.T, headers map[string]string) *Server {
	t.Helper()
	s := &Server{
		indices: make(map[string]map[string]json.RawMessage),
		headers: headers,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Fail makes the next request answer with status and body.
func (s *Server) Fail(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, body: body})
}

// AddIndex registers an empty index.
func (s *Server) AddIndex(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indices[name] = make(map[string]json.RawMessage)
}

// PutDoc stores a document directly.
func (s *Server) PutDoc(index, id, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indices[index] == nil {
		s.indices[index] = make(map[string]json.RawMessage)
	}
	s.indices[index][id] = json.RawMessage(source)
}

// Doc returns a stored document source.
func (s *Server) Doc(index, id string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.indices[index][id]
	return doc, ok
}

// HasIndex reports whether the index was created.
func (s *Server) HasIndex(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.indices[name]
	return ok
}

// Requests returns recorded calls, excluding product discovery on "/".
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent recorded call.
func (s *Server) Last() Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}
	}
	return reqs[len(reqs)-1]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	for k, v := range s.headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")

	body, _ := io.ReadAll(r.Body)

	if r.URL.Path == "/" {
		write(w, http.StatusOK, `{"version":{"number":"2.11.0","distribution":"opensearch"},"tagline":"The OpenSearch Project: https://opensearch.org/"}`)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
	})

	if len(s.failures) > 0 {
		f := s.failures[0]
		s.failures = s.failures[1:]
		write(w, f.status, f.body)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case parts[0] == "_cluster":
		write(w, http.StatusOK, `{"cluster_name":"fake","status":"green"}`)
	case len(parts) == 1:
		s.handleIndex(w, r.Method, parts[0])
	case len(parts) == 2 && parts[1] == "_search":
		s.handleSearch(w, parts[0])
	case len(parts) == 3 && parts[1] == "_doc":
		s.handleDoc(w, r.Method, parts[0], parts[2], body)
	case len(parts) == 3 && parts[1] == "_update":
		s.handleUpdate(w, parts[0], parts[2], body)
	default:
		write(w, http.StatusBadRequest, `{"error":"no handler found for uri","status":400}`)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, method, index string) {
	_, exists := s.indices[index]
	switch method {
	case http.MethodHead:
		if exists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodPut:
		if exists {
			write(w, http.StatusBadRequest, `{"error":{"type":"resource_already_exists_exception","reason":"index [`+index+`] already exists"},"status":400}`)
			return
		}
		s.indices[index] = make(map[string]json.RawMessage)
		write(w, http.StatusOK, `{"acknowledged":true,"index":"`+index+`"}`)
	case http.MethodDelete:
		if !exists {
			writeIndexMissing(w, index)
			return
		}
		delete(s.indices, index)
		write(w, http.StatusOK, `{"acknowledged":true}`)
	default:
		write(w, http.StatusMethodNotAllowed, `{"error":"method not allowed","status":405}`)
	}
}

func (s *Server) handleDoc(w http.ResponseWriter, method, index, id string, body []byte) {
	docs, exists := s.indices[index]
	switch method {
	case http.MethodPut, http.MethodPost:
		if !exists {
			docs = make(map[string]json.RawMessage)
			s.indices[index] = docs
		}
		docs[id] = json.RawMessage(body)
		write(w, http.StatusCreated, `{"_id":"`+id+`","result":"created"}`)
	case http.MethodGet:
		if !exists {
			writeIndexMissing(w, index)
			return
		}
		doc, ok := docs[id]
		if !ok {
			write(w, http.StatusNotFound, `{"_index":"`+index+`","_id":"`+id+`","found":false}`)
			return
		}
		write(w, http.StatusOK, `{"_index":"`+index+`","_id":"`+id+`","found":true,"_source":`+string(doc)+`}`)
	case http.MethodDelete:
		if !exists {
			writeIndexMissing(w, index)
			return
		}
		if _, ok := docs[id]; !ok {
			write(w, http.StatusNotFound, `{"_id":"`+id+`","result":"not_found"}`)
			return
		}
		delete(docs, id)
		write(w, http.StatusOK, `{"_id":"`+id+`","result":"deleted"}`)
	default:
		write(w, http.StatusMethodNotAllowed, `{"error":"method not allowed","status":405}`)
	}
}

func (s *Server) handleUpdate(w http.ResponseWriter, index, id string, body []byte) {
	doc, ok := s.indices[index][id]
	if !ok {
		write(w, http.StatusNotFound, `{"error":{"type":"document_missing_exception","reason":"[`+id+`]: document missing"},"status":404}`)
		return
	}

	var req struct {
		Doc map[string]json.RawMessage `json:"doc"`
	}
	var current map[string]json.RawMessage
	if json.Unmarshal(body, &req) != nil || json.Unmarshal(doc, &current) != nil {
		write(w, http.StatusBadRequest, `{"error":{"type":"parsing_exception","reason":"malformed update"},"status":400}`)
		return
	}
	for k, v := range req.Doc {
		current[k] = v
	}
	merged, _ := json.Marshal(current)
	s.indices[index][id] = merged
	write(w, http.StatusOK, `{"_id":"`+id+`","result":"updated"}`)
}

// handleSearch returns every document in the index ordered by id; queries are recorded, not evaluated.
func (s *Server) handleSearch(w http.ResponseWriter, index string) {
	docs, ok := s.indices[index]
	if !ok {
		writeIndexMissing(w, index)
		return
	}

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type hit struct {
		ID     string          `json:"_id"`
		Score  float64         `json:"_score"`
		Source json.RawMessage `json:"_source"`
	}
	hits := make([]hit, 0, len(ids))
	for _, id := range ids {
		hits = append(hits, hit{ID: id, Score: 1, Source: docs[id]})
	}

	var resp struct {
		Took int `json:"took"`
		Hits struct {
			Total struct {
				Value    int    `json:"value"`
				Relation string `json:"relation"`
			} `json:"total"`
			Hits []hit `json:"hits"`
		} `json:"hits"`
	}
	resp.Took = 3
	resp.Hits.Total.Value = len(hits)
	resp.Hits.Total.Relation = "eq"
	resp.Hits.Hits = hits

	out, _ := json.Marshal(resp)
	write(w, http.StatusOK, string(out))
}

func writeIndexMissing(w http.ResponseWriter, index string) {
	write(w, http.StatusNotFound, `{"error":{"type":"index_not_found_exception","reason":"no such index [`+index+`]"},"status":404}`)
}

func write(w http.ResponseWriter, status int, body string) {
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
