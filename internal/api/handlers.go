package api

import (
	"net/http"

	"github.com/piwi3910/FilmCut/internal/cache"
	"github.com/piwi3910/FilmCut/internal/engine"
	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/piwi3910/FilmCut/internal/parser"
)

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Pieces  []model.PieceSpec  `json:"pieces"`
	Errors  []parser.LineError `json:"errors"`
	Success bool               `json:"success"`
}

// piecesRequest is shared by /pack and /compare. Exactly one of Pieces and
// Text is expected; Pieces wins when both are set.
type piecesRequest struct {
	Pieces  []model.PieceSpec     `json:"pieces"`
	Text    string                `json:"text"`
	Options *model.PackingOptions `json:"options"`
}

type packResponse struct {
	model.PackingResult
	Cached bool `json:"cached"`
}

type compareRequest struct {
	piecesRequest
	Rolls []model.FilmRoll `json:"rolls"`
}

type compareResponse struct {
	Scenarios []engine.ComparisonResult `json:"scenarios"`
	Best      int                       `json:"best"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res := parser.Parse(req.Text)
	writeJSON(w, http.StatusOK, parseResponse{
		Pieces:  res.Pieces,
		Errors:  res.Errors,
		Success: res.Success(),
	})
}

// pieces resolves the request's pieces and options. Pieces parsed from text
// are renumbered so the same text always yields the same instance IDs.
func (s *Server) pieces(req piecesRequest) ([]model.PieceSpec, model.PackingOptions, error) {
	opts := s.defaults
	if req.Options != nil {
		opts = req.Options.WithDefaults()
	}
	if err := opts.Validate(); err != nil {
		return nil, opts, err
	}

	var pieces []model.PieceSpec
	switch {
	case len(req.Pieces) > 0:
		pieces = model.FillMissingIDs(req.Pieces)
	case req.Text != "":
		res := parser.Parse(req.Text)
		if !res.Success() {
			return nil, opts, &errUnprocessable{msg: res.Err().Error(), lines: res.Errors}
		}
		pieces = model.NumberPieces(res.Pieces)
	}
	if len(pieces) == 0 {
		return nil, opts, &errUnprocessable{msg: "pieces or text required"}
	}
	if err := model.ValidatePieceSpecs(pieces); err != nil {
		return nil, opts, err
	}
	if err := model.CheckInstanceLimit(pieces, s.maxInst); err != nil {
		return nil, opts, err
	}
	return pieces, opts, nil
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	var req piecesRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	pieces, opts, err := s.pieces(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	instances := model.Expand(pieces)
	key := cache.PackKey(instances, opts)

	result, hit, err := cache.GetResult(ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("cache read failed", "err", err)
	}
	if hit {
		s.logger.Debug("pack served from cache", "instances", len(instances))
		writeJSON(w, http.StatusOK, packResponse{PackingResult: result, Cached: true})
		return
	}

	result, err = engine.Pack(instances, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := cache.SetResult(ctx, s.cache, key, result, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "err", err)
	}
	s.logger.Debug("packed", "instances", len(instances), "bins", len(result.Bins), "waste", result.WastePercentage)
	writeJSON(w, http.StatusOK, packResponse{PackingResult: result})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	pieces, opts, err := s.pieces(req.piecesRequest)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rolls := req.Rolls
	if rolls == nil {
		rolls = s.rolls.Rolls
	}
	scenarios := engine.BuildDefaultScenarios(opts, rolls)
	results := engine.CompareScenarios(scenarios, model.Expand(pieces))
	writeJSON(w, http.StatusOK, compareResponse{Scenarios: results, Best: engine.Best(results)})
}
