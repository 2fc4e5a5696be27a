package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/isofixture/pkg/buildinfo"
	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/io"
	"github.com/matzehuels/isofixture/pkg/iso"
	"github.com/matzehuels/isofixture/pkg/pipeline"
)

// Response headers.
const (
	headerSeed  = "X-Fixture-Seed"
	headerCache = "X-Fixture-Cache"
	headerRunID = "X-Fixture-Run-Id"
)

// fixtureResponse is the body of GET /v1/fixture.
type fixtureResponse struct {
	RunID    string   `json:"run_id"`
	Seed     string   `json:"seed"` // decimal; exceeds float64 precision
	Nodes    int      `json:"nodes"`
	Coverage int      `json:"coverage"`
	Edges    int      `json:"edges"`
	CacheHit bool     `json:"cache_hit"`
	Token    string   `json:"token"`
	Patterns []string `json:"patterns"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// GET /healthz: liveness check.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /version: build information.
func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// GET /v1/token: token graph text.
func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}
	tok, err := s.runner.BuildToken(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	setTokenHeaders(w, tok)
	writeText(w, io.Serialize(tok.Graph))
}

// GET /v1/pattern: pattern number index (1-based) of the token for the
// same parameters and seed.
func (s *Server) pattern(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := parseOptions(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	index, err := intParam(q, "index", 1)
	if err == nil {
		err = errors.ValidateIsographs(index)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	tok, err := s.runner.BuildToken(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Copies are drawn in order, so pattern i needs the first i permutations.
	var last iso.Copy
	err = s.runner.GeneratePatterns(r.Context(), tok.Graph, index, tok.Seed, func(c iso.Copy) error {
		last = c
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	setTokenHeaders(w, tok)
	writeText(w, io.Serialize(last.Graph))
}

// GET /v1/fixture: token plus all patterns as JSON.
func (s *Server) fixture(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := parseOptions(q)
	if err == nil {
		opts.Isographs, err = intParam(q, "isographs", pipeline.DefaultIsographs)
	}
	if err == nil {
		err = errors.ValidateIsographs(opts.Isographs)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	tok, err := s.runner.BuildToken(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := fixtureResponse{
		RunID:    uuid.NewString(),
		Seed:     strconv.FormatUint(tok.Seed, 10),
		Nodes:    opts.Nodes,
		Coverage: opts.Coverage,
		Edges:    tok.Graph.EdgeCount(),
		CacheHit: tok.CacheHit,
		Token:    io.Serialize(tok.Graph),
		Patterns: make([]string, 0, opts.Isographs),
	}
	err = s.runner.GeneratePatterns(r.Context(), tok.Graph, opts.Isographs, tok.Seed, func(c iso.Copy) error {
		resp.Patterns = append(resp.Patterns, io.Serialize(c.Graph))
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	setTokenHeaders(w, tok)
	w.Header().Set(headerRunID, resp.RunID)
	writeJSON(w, http.StatusOK, resp)
}

// parseOptions reads nodes, coverage and seed, applying defaults for absent
// values and validating nodes and coverage.
func parseOptions(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error
	if opts.Nodes, err = intParam(q, "nodes", pipeline.DefaultNodes); err != nil {
		return opts, err
	}
	if opts.Coverage, err = intParam(q, "coverage", pipeline.DefaultCoverage); err != nil {
		return opts, err
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidParameter, "seed must be an unsigned integer (got %q)", raw)
		}
		opts.Seed = &seed
	}
	return opts, opts.ValidateForToken()
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidParameter, "%s must be an integer (got %q)", name, raw)
	}
	return v, nil
}

func setTokenHeaders(w http.ResponseWriter, tok *pipeline.Token) {
	w.Header().Set(headerSeed, strconv.FormatUint(tok.Seed, 10))
	if tok.CacheHit {
		w.Header().Set(headerCache, "hit")
	} else {
		w.Header().Set(headerCache, "miss")
	}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidParameter, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
