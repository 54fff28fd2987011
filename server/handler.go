// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/engine"
	"github.com/katalvlaran/decaychain/inventory"
	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/store"
	"github.com/katalvlaran/decaychain/units"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// DecayRequest is the body of POST /v1/decay. Numbers are kept as JSON
// literals so exact requests see the decimal as written.
type DecayRequest struct {
	Dataset      string                 `json:"dataset"`
	Contents     map[string]json.Number `json:"contents"`
	ActivityUnit string                 `json:"activity_unit,omitempty"` // default Bq
	Time         json.Number            `json:"time"`
	Unit         string                 `json:"unit"` // default s
	Exact        bool                   `json:"exact,omitempty"`
	Sig          int                    `json:"sig,omitempty"`
}

// DecayResponse carries the decayed activities in Bq keyed by canonical name.
type DecayResponse struct {
	Dataset  string            `json:"dataset"`
	Exact    bool              `json:"exact"`
	Sig      int               `json:"sig,omitempty"`
	Nuclides []string          `json:"nuclides"`
	Contents map[string]string `json:"contents"`
}

// NuclideResponse describes one nuclide of a dataset.
type NuclideResponse struct {
	Dataset     string   `json:"dataset"`
	Nuclide     string   `json:"nuclide"`
	HalfLife    string   `json:"half_life"`
	Progeny     []string `json:"progeny"`
	Fractions   []string `json:"fractions"`
	Modes       []string `json:"modes"`
	Descendants []string `json:"descendants"`

	ExactFractions []string           `json:"exact_fractions,omitempty"`
	DecayEnergies  map[string]float64 `json:"decay_energies_kev,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the decay API.
type Handler struct {
	datasets Datasets
	metrics  *engine.Metrics
	workers  int
	sig      int
	logger   *log.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMetrics records every evolution in m.
func WithMetrics(m *engine.Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithWorkers sets the engine worker count; values below 1 are ignored.
func WithWorkers(n int) HandlerOption {
	return func(h *Handler) {
		if n >= 1 {
			h.workers = n
		}
	}
}

// WithSignificantFigures sets the default for exact requests without sig.
func WithSignificantFigures(sig int) HandlerOption {
	return func(h *Handler) { h.sig = sig }
}

// WithLogger logs failed requests to l.
func WithLogger(l *log.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler returns a handler resolving datasets through ds.
func NewHandler(ds Datasets, opts ...HandlerOption) *Handler {
	h := &Handler{
		datasets: ds,
		workers:  engine.DefaultWorkers,
		sig:      15,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, fn := range opts {
		fn(h)
	}

	return h
}

// RegisterRoutes installs the API on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/decay", h.decay)
	mux.HandleFunc("GET /v1/datasets/{dataset}/nuclides/{nuclide}", h.nuclide)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func (h *Handler) decay(w http.ResponseWriter, r *http.Request) {
	var req DecayRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	ds, err := h.datasets.Dataset(r.Context(), req.Dataset)
	if err != nil {
		h.fail(w, statusOf(err), err)
		return
	}

	contents := make(map[nuclide.Ref]numeric.Value, len(req.Contents))
	for name, raw := range req.Contents {
		v, err := parseNumber(raw, req.Exact)
		if err != nil {
			h.fail(w, http.StatusBadRequest, fmt.Errorf("%w: %s: %w", inventory.ErrInvalidActivity, name, err))
			return
		}
		contents[nuclide.Name(name)] = v
	}
	var invOpts []inventory.Option
	if req.ActivityUnit != "" {
		invOpts = append(invOpts, inventory.WithUnit(req.ActivityUnit))
	}
	inv, err := inventory.New(ds, contents, invOpts...)
	if err != nil {
		h.fail(w, statusOf(err), err)
		return
	}

	elapsed, err := parseNumber(req.Time, req.Exact)
	if err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("%w: %w", engine.ErrInvalidTime, err))
		return
	}
	unit := req.Unit
	if unit == "" {
		unit = "s"
	}
	sig := req.Sig
	if sig == 0 {
		sig = h.sig
	}
	engineOpts := []engine.Option{engine.WithContext(r.Context()), engine.WithWorkers(h.workers)}
	if h.metrics != nil {
		engineOpts = append(engineOpts, engine.WithMetrics(h.metrics))
	}

	var out *inventory.Inventory
	if req.Exact {
		out, err = inv.DecayExact(elapsed, unit, sig, engineOpts...)
	} else {
		out, err = inv.Decay(elapsed, unit, engineOpts...)
	}
	if err != nil {
		h.fail(w, statusOf(err), err)
		return
	}

	resp := DecayResponse{Dataset: ds.Name(), Exact: req.Exact, Nuclides: out.Nuclides(), Contents: make(map[string]string, out.Len())}
	if req.Exact {
		resp.Sig = sig
	}
	for name, v := range out.Contents() {
		if req.Exact {
			resp.Contents[name] = numeric.FormatValue(v, sig)
			continue
		}
		resp.Contents[name] = v.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) nuclide(w http.ResponseWriter, r *http.Request) {
	ds, err := h.datasets.Dataset(r.Context(), r.PathValue("dataset"))
	if err != nil {
		h.fail(w, statusOf(err), err)
		return
	}
	i, err := ds.Resolve(nuclide.Name(r.PathValue("nuclide")))
	if err != nil {
		h.fail(w, statusOf(err), err)
		return
	}
	name, _ := ds.NuclideAt(i)
	hl, _ := ds.HalfLife(i)
	branches, _ := ds.Progeny(i)
	descendants, err := ds.Descendants(i)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}

	resp := NuclideResponse{
		Dataset:     ds.Name(),
		Nuclide:     name,
		HalfLife:    ds.TimeConverter().Readable(hl),
		Progeny:     make([]string, len(branches)),
		Fractions:   make([]string, len(branches)),
		Modes:       make([]string, len(branches)),
		Descendants: append([]string{}, descendants...),
	}
	for k, b := range branches {
		resp.Progeny[k] = b.Name
		resp.Fractions[k] = strconv.FormatFloat(b.Fraction, 'g', -1, 64)
		resp.Modes[k] = b.Mode
	}
	if ex, ok := ds.Exact(); ok {
		for _, f := range ex.Fractions(i) {
			resp.ExactFractions = append(resp.ExactFractions, f.RatString())
		}
	}
	if energies, err := ds.DecayEnergies(i, "keV"); err == nil && len(energies) > 0 {
		resp.DecayEnergies = energies
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	h.logger.Printf("request failed (%d): %v", status, err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// parseNumber reads a JSON number literal as an exact rational or a float64.
func parseNumber(raw json.Number, exact bool) (numeric.Value, error) {
	if raw == "" {
		return numeric.Value{}, errors.New("missing number")
	}
	if exact {
		return numeric.ParseExact(raw.String())
	}
	f, err := raw.Float64()
	if err != nil {
		return numeric.Value{}, err
	}

	return numeric.Fixed(f), nil
}

// clientErrors are failures caused by the request itself.
var clientErrors = []error{
	nuclide.ErrInvalidNuclide,
	nuclide.ErrUnknownNuclide,
	units.ErrUnknownUnit,
	inventory.ErrInvalidActivity,
	inventory.ErrDuplicateNuclide,
	engine.ErrStableNuclideActivity,
	engine.ErrInvalidSignificantFigures,
	engine.ErrInvalidTime,
	engine.ErrInvalidQuantity,
	engine.ErrExponentOverflow,
}

// statusOf maps an error to an HTTP status.
func statusOf(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, engine.ErrPrecisionUnavailable) {
		return http.StatusUnprocessableEntity
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, dataset.ErrDatasetLoad) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
