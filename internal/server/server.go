package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/simulation"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/spec"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server is a stateless HTTP front end to the simulator. Every request is
// computed from its own body; nothing is shared between requests.
type Server struct {
	projectPath string
	port        int

	// Log receives one entry per request.
	Log logrus.FieldLogger
}

// New creates a server. projectPath, if not empty, names a scenario file or
// project directory served from /api/scenario.
func New(projectPath string, port int) *Server {
	return &Server{
		projectPath: projectPath,
		port:        port,
		Log:         logrus.StandardLogger(),
	}
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/defaults", s.handleDefaults)
	mux.HandleFunc("GET /api/scenario", s.handleScenario)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("POST /api/sweep", s.handleSweep)
	mux.HandleFunc("GET /api/kp", s.handleKp)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s.logRequests(mux)
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.Log.WithFields(logrus.Fields{
		"addr":    addr,
		"project": s.projectPath,
	}).Info("gasifier server starting")

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"url":      r.URL.String(),
			"addr":     r.RemoteAddr,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("gasifier request")
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Gasifier</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Biomass gasifier simulator</h1>
<p>POST a scenario to <code>/api/simulate</code>. <code>GET /api/defaults</code> returns a starting point.</p>
</div>
</body></html>`)
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, spec.Default())
}

func (s *Server) handleScenario(w http.ResponseWriter, _ *http.Request) {
	if s.projectPath == "" {
		s.writeError(w, http.StatusNotFound, errors.New("server was started without a project"))
		return
	}
	sc, err := spec.LoadPath(s.projectPath)
	if err != nil {
		s.Log.WithError(err).Error("loading project scenario")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.decodeScenario(w, r)
	if !ok {
		return
	}
	_, report, err := simulation.RunScenario(sc)
	if err != nil && !errors.Is(err, equilibrium.ErrSolveFailed) {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.decodeScenario(w, r)
	if !ok {
		return
	}
	res, report, err := simulation.RunScenario(sc)
	if err != nil {
		s.writeRunError(w, err, report)
		return
	}
	if res == nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": report.Err().Error(), "validation": report})
		return
	}
	outs, err := res.EvaluateOutputs(sc.Outputs)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"result":     res,
		"validation": report,
		"outputs":    outs,
	})
}

type sweepRequest struct {
	Scenario  json.RawMessage `json:"scenario"`
	Parameter string          `json:"parameter"`
	Values    []float64       `json:"values"`
}

type sweepRow struct {
	Value      float64            `json:"value"`
	Result     *simulation.Result `json:"result,omitempty"`
	Validation *validation.Report `json:"validation"`
	Error      string             `json:"error,omitempty"`
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding sweep request: %w", err))
		return
	}
	sc, err := spec.Parse(req.Scenario, spec.FormatJSON)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if report := validation.ValidateSchema(sc); !report.Valid {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": report.Err().Error(), "validation": report})
		return
	}
	param, err := simulation.ParseParameter(req.Parameter)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	base, err := simulation.FromScenario(sc)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	rows, err := simulation.Sweep(base, param, req.Values)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	out := make([]sweepRow, len(rows))
	for i, row := range rows {
		out[i] = sweepRow{Value: row.Value, Result: row.Result, Validation: row.Report}
		if row.Err != nil {
			out[i].Error = row.Err.Error()
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"parameter": param, "rows": out})
}

func (s *Server) handleKp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tC, err := cast.ToFloat64E(q.Get("temperature_c"))
	if err != nil || q.Get("temperature_c") == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("temperature_c must be a number, got %q", q.Get("temperature_c")))
		return
	}
	corr, err := equilibrium.ParseCorrelation(q.Get("correlation"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	tK := chem.ToKelvin(tC)
	if tK <= 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("temperature %.2f °C is below absolute zero", tC))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"temperature_c": tC,
		"temperature_k": tK,
		"correlation":   corr,
		"kp":            corr.Kp(tK),
	})
}

func (s *Server) decodeScenario(w http.ResponseWriter, r *http.Request) (*spec.Scenario, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("reading request body: %w", err))
		return nil, false
	}
	sc, err := spec.Parse(body, spec.FormatJSON)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return sc, true
}

func (s *Server) writeRunError(w http.ResponseWriter, err error, report *validation.Report) {
	body := map[string]any{
		"error":      err.Error(),
		"validation": report,
	}
	var se *equilibrium.SolveError
	if errors.As(err, &se) {
		body["constraint"] = se.Constraint
	}
	s.writeJSON(w, http.StatusUnprocessableEntity, body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeJSON encodes v before writing the header, so that a value that
// cannot be encoded gives a 500 with an error body instead of a truncated
// response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.Log.WithError(err).WithField("status", status).Error("encoding response")
		status = http.StatusInternalServerError
		b, _ = json.Marshal(map[string]string{"error": "encoding response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		s.Log.WithError(err).Warn("writing response")
	}
}
