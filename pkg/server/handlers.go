package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/store"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Data      any             `json:"data"`
	Options   *layout.Options `json:"options,omitempty"`
	Collapsed []int           `json:"collapsed,omitempty"`
}

// mapRequest is the body of POST /v1/maps and PUT /v1/maps/{id}.
type mapRequest struct {
	Data    any             `json:"data"`
	Options *layout.Options `json:"options,omitempty"`
}

// collapseResponse reports the collapse state after a toggle or clear.
type collapseResponse struct {
	ID        string `json:"id"`
	Node      *int   `json:"node,omitempty"`
	Collapsed bool   `json:"collapsed"`
	IDs       []int  `json:"collapsedIds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	opts := s.options(req.Options, req.Collapsed)
	s.respondLayout(w, r, req.Data, opts)
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	m := &store.Map{Data: req.Data, Options: s.defaults.Layout}
	if req.Options != nil {
		m.Options = *req.Options
	}
	if err := validateMap(m); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Create(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("created map", "id", m.ID)
	_ = writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	m, err := s.getMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMap(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.getMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m.Data = req.Data
	if req.Options != nil {
		m.Options = *req.Options
	}
	// New content invalidates node ids, like Engine.Load.
	m.Collapsed = nil
	if err := validateMap(m); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Update(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMapID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMapLayout(w http.ResponseWriter, r *http.Request) {
	m, err := s.getMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := s.options(&m.Options, m.Collapsed)
	s.respondLayout(w, r, m.Data, opts)
}

func (s *Server) handleToggleCollapse(w http.ResponseWriter, r *http.Request) {
	node, err := strconv.Atoi(chi.URLParam(r, "node"))
	if err != nil || node < 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid node id %q", chi.URLParam(r, "node")))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.getMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	set := tree.NewCollapseSet(m.Collapsed...)
	state := set.Toggle(node)
	m.Collapsed = set.IDs()
	if m.Collapsed == nil {
		m.Collapsed = []int{}
	}
	if err := s.store.Update(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, collapseResponse{ID: m.ID, Node: &node, Collapsed: state, IDs: m.Collapsed})
}

func (s *Server) handleClearCollapse(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.getMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m.Collapsed = []int{}
	if err := s.store.Update(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, collapseResponse{ID: m.ID, IDs: m.Collapsed})
}

// getMap loads the map named by the {id} URL parameter.
func (s *Server) getMap(r *http.Request) (*store.Map, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMapID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

// options derives per-request pipeline options from the server defaults.
func (s *Server) options(lo *layout.Options, collapsed []int) pipeline.Options {
	opts := s.defaults
	opts.Formats = nil
	if lo != nil {
		opts.Layout = *lo
	}
	opts.Collapsed = collapsed
	return opts
}

// respondLayout lays out data and writes it in the format requested by the
// format query parameter.
func (s *Server) respondLayout(w http.ResponseWriter, r *http.Request, data any, opts pipeline.Options) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeUnsupported, err, "unsupported format %q", format))
		return
	}
	if theme := r.URL.Query().Get("theme"); theme != "" {
		opts.Theme = theme
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, warning := range result.Warnings {
		w.Header().Add("X-Mindmap-Warning", warning)
	}
	writeArtifact(w, format, result.Artifacts[format])
}

// validateMap checks that m's data is a tree the engine accepts.
func validateMap(m *store.Map) error {
	opts := m.Options
	opts.Normalize()
	_, err := tree.Build(m.Data, opts.BuildOptions())
	return err
}
