package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
	"github.com/complianceworks/sanctions-screening-backend/internal/listfeed"
	"github.com/complianceworks/sanctions-screening-backend/internal/service/screening"
)

// Handler holds the dependencies of all route handlers
type Handler struct {
	logger   *slog.Logger
	service  *screening.Service
	loader   *listfeed.Loader
	validate *validator.Validate
	version  string
	started  time.Time
}

func NewHandler(logger *slog.Logger, service *screening.Service, loader *listfeed.Loader, version string) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		loader:   loader,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		version:  version,
		started:  time.Now(),
	}
}

// handleScreen screens one subject: POST /api/v1/screen
func (h *Handler) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req ScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Screen(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toScreenResponse(result, time.Since(start)))
}

// handleScreenBulk screens a batch: POST /api/v1/screen/bulk
func (h *Handler) handleScreenBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.service.RunBatch(r.Context(), req.toInputs())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBulkResponse(report))
}

// handleHealth reports service health: GET /api/v1/health. Always 200 so
// monitors can read the payload; status turns "degraded" while no index
// snapshot is loaded.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}

	ix, err := h.service.IndexStore().Active()
	if err != nil {
		resp.Status = "degraded"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	builtAt := ix.BuiltAt()
	resp.IndexLoaded = true
	resp.IndexVersion = ix.Version()
	resp.IndexBuiltAt = &builtAt
	resp.Entities = ix.CountBySource()
	writeJSON(w, http.StatusOK, resp)
}

// handleLists describes the supported list sources: GET /api/v1/lists
func (h *Handler) handleLists(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	if ix, err := h.service.IndexStore().Active(); err == nil {
		counts = ix.CountBySource()
	}

	sources := make([]ListSourceInfo, 0, len(values.GetSupportedSources()))
	for _, name := range values.GetSupportedSources() {
		source := values.MustNewListSource(name)
		sources = append(sources, ListSourceInfo{
			Source:      name,
			DisplayName: source.DisplayName(),
			Entities:    counts[name],
		})
	}

	writeJSON(w, http.StatusOK, ListsResponse{Sources: sources})
}

// handleRebuildIndex rebuilds the index from the configured suppliers:
// POST /api/v1/index/rebuild
func (h *Handler) handleRebuildIndex(w http.ResponseWriter, r *http.Request) {
	ix, err := h.loader.Rebuild(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RebuildResponse{
		IndexVersion: ix.Version(),
		Entities:     ix.Size(),
		BySource:     ix.CountBySource(),
		BuiltAt:      ix.BuiltAt(),
	})
}

// handleLiveness answers process liveness: GET /healthz
func (h *Handler) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
