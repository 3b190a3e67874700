package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/isaacphysics/equality-checker/checkerr"
	"github.com/isaacphysics/equality-checker/engine"
	"github.com/isaacphysics/equality-checker/symbols"
)

// Server wires the equivalence engine to the HTTP surface spec.md §6
// describes: /check, /check/maths, /check/logic, and a liveness probe.
type Server struct {
	engine  *engine.Engine
	timeout func() time.Duration
	log     *slog.Logger
}

// NewServer builds a Server. timeout is read once per incoming request,
// so a config reload that changes the default deadline takes effect for
// the next request without ever touching one already in flight. A zero
// duration disables the deadline.
func NewServer(eng *engine.Engine, timeout func() time.Duration, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{engine: eng, timeout: timeout, log: log}
}

// Handler returns the routed http.Handler for this server, ready to pass
// to http.ListenAndServe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePing)
	mux.HandleFunc("POST /check", s.handleCheck(symbols.Maths))
	mux.HandleFunc("POST /check/maths", s.handleCheck(symbols.Maths))
	mux.HandleFunc("POST /check/logic", s.handleCheck(symbols.Logic))
	return withJSONErrorEnvelope(mux)
}

// handlePing answers the liveness probe exactly as the original service's
// ping handler did.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"code": http.StatusOK})
}

func (s *Server) handleCheck(mode symbols.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeResponse(w, checkResponse{Error: "could not read request body", Code: http.StatusBadRequest})
			return
		}
		req, err := decodeCheckRequest(body)
		if err != nil {
			writeResponse(w, checkResponse{Error: err.Error(), Code: http.StatusBadRequest})
			return
		}

		log := s.log
		if req.Description != "" {
			log = log.With("description", req.Description)
		}

		ctx := r.Context()
		var cancel context.CancelFunc
		if d := s.timeout(); d > 0 {
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}

		log.Debug("check requested", "target", req.Target, "test", req.Test, "mode", mode)
		res, err := s.engine.Check(ctx, req.Target, req.Test, req.engineOptions(mode))
		if err != nil {
			writeResponse(w, errorToResponse(req, err))
			return
		}
		log.Debug("check decided", "equal", res.Equal, "tier", res.Tier)
		writeResponse(w, resultToResponse(res))
	}
}

// errorToResponse maps an engine error onto the JSON error envelope
// spec.md §7 describes: fatal errors (trusted target side) surface as
// HTTP-400-class `code`; non-fatal ones surface as `syntax_error`. A
// CaseError additionally reports which ± branch was the culprit.
func errorToResponse(req *checkRequest, err error) checkResponse {
	resp := checkResponse{Target: req.Target, Test: req.Test}

	if ce, ok := err.(*engine.CaseError); ok {
		resp.Case = ce.Case
		err = ce.Err
	}

	ce, ok := checkerr.As(err)
	if !ok {
		resp.Error = err.Error()
		resp.Code = http.StatusInternalServerError
		return resp
	}

	resp.Error = ce.Message
	switch {
	case ce.Kind == checkerr.KindIllFormedRequest:
		resp.Code = http.StatusBadRequest
	case ce.Fatal:
		resp.Code = http.StatusBadRequest
	default:
		resp.SyntaxError = "true"
	}
	return resp
}

func writeResponse(w http.ResponseWriter, resp checkResponse) {
	status := http.StatusOK
	if resp.Code != 0 && resp.Code != http.StatusOK {
		status = resp.Code
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// withJSONErrorEnvelope wraps mux so that any error the HTTP framework
// itself would otherwise render as plain text (404 for an unrouted path,
// 405 for a disallowed method) is instead wrapped in the same JSON
// envelope as an engine error — no response is ever bare text.
func withJSONErrorEnvelope(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		mux.ServeHTTP(rec, r)
		if rec.wroteBody {
			return
		}
		if rec.status >= 400 {
			writeJSON(w, rec.status, checkResponse{
				Error: http.StatusText(rec.status),
				Code:  rec.status,
			})
		}
	})
}

// statusRecorder intercepts WriteHeader/Write so withJSONErrorEnvelope can
// detect whether the wrapped mux already produced a body (our own
// handlers always do) before substituting its own JSON error body.
type statusRecorder struct {
	http.ResponseWriter
	status    int
	wroteBody bool
}

// isJSON reports whether the handler already declared a JSON body, which
// only our own handlers do; such an error body is passed through as is.
func (r *statusRecorder) isJSON() bool {
	return r.Header().Get("Content-Type") == "application/json"
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	if status < 400 || r.isJSON() {
		r.ResponseWriter.WriteHeader(status)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status >= 400 && !r.wroteBody && !r.isJSON() {
		return len(b), nil
	}
	r.wroteBody = true
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}
