package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/lessonwise/schedule-console/internal/repository"
	"github.com/lessonwise/schedule-console/internal/schedule"
	"github.com/lessonwise/schedule-console/internal/service"
	"go.uber.org/zap"
)

// Handler serves the console API.
type Handler struct {
	builder     *schedule.GridBuilder
	sessions    *service.SessionStore
	teacherRepo *repository.TeacherRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewHandler(
	builder *schedule.GridBuilder,
	sessions *service.SessionStore,
	teacherRepo *repository.TeacherRepository,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		builder:     builder,
		sessions:    sessions,
		teacherRepo: teacherRepo,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTeachers returns active directory entries, optionally filtered by the
// console's location parameter.
func (h *Handler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teacherRepo.ListActive(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		h.logger.Error("Failed to list teachers", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "teacher lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teachers": teachers})
}

// BuildGrid runs one synchronous grid build: every (teacher, day) cell is
// fetched and classified before the response is written. Failed cells come
// back marked failed, not as a failed request.
func (h *Handler) BuildGrid(w http.ResponseWriter, r *http.Request) {
	q, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}

	grid, err := h.builder.Build(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// SetSessionQuery replaces the active query of a console view session and
// dispatches its cell tasks; the response returns immediately while cells
// resolve in the background.
func (h *Handler) SetSessionQuery(w http.ResponseWriter, r *http.Request) {
	q, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}

	session := h.sessions.GetOrCreate(chi.URLParam(r, "sessionID"))
	if err := session.SetQuery(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "dispatched"})
}

// SessionSnapshot returns the resolved cells of the session's active query
// plus the number still in flight.
func (h *Handler) SessionSnapshot(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if session == nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	grid, pending := session.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"grid": grid, "pending": pending})
}

// decodeQuery parses, validates, and resolves a grid query request. An empty
// teacher set means "all active teachers", narrowed by the location filter.
func (h *Handler) decodeQuery(w http.ResponseWriter, r *http.Request) (model.GridQuery, bool) {
	var req gridQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return model.GridQuery{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.GridQuery{}, false
	}

	q, err := req.toQuery()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.GridQuery{}, false
	}

	if len(q.TeacherIDs) == 0 {
		teachers, err := h.teacherRepo.ListActive(r.Context(), q.Location)
		if err != nil {
			h.logger.Error("Failed to resolve teacher set", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "teacher lookup failed")
			return model.GridQuery{}, false
		}
		for _, t := range teachers {
			q.TeacherIDs = append(q.TeacherIDs, t.ID)
		}
	}

	return q, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
