// Package simulation exposes the schedule engine over a JSON HTTP API.
package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/kilianp07/flexicity/core/engine"
	"github.com/kilianp07/flexicity/core/logger"
	"github.com/kilianp07/flexicity/core/model"
	"github.com/kilianp07/flexicity/core/optimizer"
)

// Server serializes every request on one engine.
type Server struct {
	mu    sync.Mutex
	eng   *engine.Engine
	opt   *optimizer.Optimizer
	token string
	log   logger.Logger
}

// NewServer wraps eng. Requests must carry "Authorization: Bearer <token>"
// when token is non-empty.
func NewServer(eng *engine.Engine, opt *optimizer.Optimizer, token string, log logger.Logger) *Server {
	if opt == nil {
		opt = optimizer.New()
	}
	return &Server{eng: eng, opt: opt, token: token, log: logger.OrNop(log)}
}

// assetRequest is the body of add and update calls. Omitted variable and
// enabled flags default to true.
type assetRequest struct {
	Owner     string  `json:"owner"`
	Appliance string  `json:"appliance"`
	PowerKW   float64 `json:"power_kw"`
	DurationH int     `json:"duration_h"`
	StartHour int     `json:"start_hour"`
	EndHour   int     `json:"end_hour"`
	Variable  *bool   `json:"variable"`
	Enabled   *bool   `json:"enabled"`
}

func (r assetRequest) spec() model.AssetSpec {
	s := model.NewAssetSpec(r.Owner, r.Appliance, r.PowerKW, r.DurationH, r.StartHour, r.EndHour)
	if r.Variable != nil {
		s.Variable = *r.Variable
	}
	if r.Enabled != nil {
		s.Enabled = *r.Enabled
	}
	return s
}

type idResponse struct {
	ID model.AssetID `json:"id"`
}

type scenariosResponse struct {
	Active string   `json:"active"`
	Names  []string `json:"names"`
}

type scenarioRequest struct {
	Name string `json:"name"`
}

// parametersRequest leaves a parameter untouched when its field is omitted.
type parametersRequest struct {
	FlexPct  *float64 `json:"flex_pct"`
	PricePct *float64 `json:"price_pct"`
}

type parametersResponse struct {
	FlexPct  float64 `json:"flex_pct"`
	PricePct float64 `json:"price_pct"`
}

type curvesResponse struct {
	Before model.Curve `json:"before_kw"`
	After  model.Curve `json:"after_kw"`
	Prices model.Curve `json:"prices_cents_kwh"`
}

type optimizeRequest struct {
	Policy string `json:"policy"`
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/assets", s.listAssets)
	mux.HandleFunc("POST /api/assets", s.addAsset)
	mux.HandleFunc("PUT /api/assets/{id}", s.updateAsset)
	mux.HandleFunc("DELETE /api/assets/{id}", s.removeAsset)
	mux.HandleFunc("POST /api/assets/{id}/toggle", s.toggleAsset)
	mux.HandleFunc("GET /api/scenarios", s.listScenarios)
	mux.HandleFunc("PUT /api/scenario", s.applyScenario)
	mux.HandleFunc("GET /api/parameters", s.getParameters)
	mux.HandleFunc("PUT /api/parameters", s.setParameters)
	mux.HandleFunc("GET /api/curves", s.curves)
	mux.HandleFunc("GET /api/stats", s.stats)
	mux.HandleFunc("POST /api/optimize", s.optimize)
	return s.authorize(mux)
}

func (s *Server) authorize(next http.Handler) http.Handler {
	if s.token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	assets := s.eng.ListAssets()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) addAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	id, err := s.eng.AddAsset(req.spec())
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) updateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	err := s.eng.UpdateAsset(model.AssetID(r.PathValue("id")), req.spec())
	s.mu.Unlock()
	s.writeResult(w, err)
}

func (s *Server) removeAsset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.eng.RemoveAsset(model.AssetID(r.PathValue("id")))
	s.mu.Unlock()
	s.writeResult(w, err)
}

func (s *Server) toggleAsset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.eng.ToggleEnabled(model.AssetID(r.PathValue("id")))
	s.mu.Unlock()
	s.writeResult(w, err)
}

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := scenariosResponse{Active: s.eng.Scenario().Name, Names: s.eng.ListScenarios()}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) applyScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	err := s.eng.ApplyScenario(req.Name)
	s.mu.Unlock()
	s.writeResult(w, err)
}

func (s *Server) getParameters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := s.parameters()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) setParameters(w http.ResponseWriter, r *http.Request) {
	var req parametersRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	cur := s.parameters()
	if req.FlexPct != nil {
		cur.FlexPct = *req.FlexPct
	}
	if req.PricePct != nil {
		cur.PricePct = *req.PricePct
	}
	s.eng.SetParameters(cur.FlexPct, cur.PricePct)
	resp := s.parameters()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// parameters must be called with mu held.
func (s *Server) parameters() parametersResponse {
	return parametersResponse{FlexPct: s.eng.FlexParticipation() * 100, PricePct: s.eng.PriceWeight() * 100}
}

func (s *Server) curves(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := curvesResponse{Before: s.eng.BeforeLoad(), After: s.eng.AfterLoad(), Prices: s.eng.Prices()}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.eng.ComputeStats()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !decode(w, r, &req) {
		return
	}
	policy, err := optimizer.ParsePolicy(req.Policy)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	res, err := s.opt.Run(r.Context(), s.eng, policy)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeResult(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, optimizer.ErrUnknownPolicy):
		code = http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, context.Canceled):
		code = http.StatusServiceUnavailable
	default:
		s.log.Errorf("api request failed: %v", err)
	}
	http.Error(w, err.Error(), code)
}

// ListenAndServe serves h on addr until ctx is canceled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log logger.Logger) error {
	log = logger.OrNop(log)
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("api server shutdown: %v", err)
		}
	}()
	log.Infof("serving api on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
