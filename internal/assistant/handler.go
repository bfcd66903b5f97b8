package assistant

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"CivilBot/internal/auth"
	"CivilBot/internal/calc/respond"
	"CivilBot/internal/calc/schedule"
	"CivilBot/internal/history"
	"CivilBot/internal/upload"
)

type Handler struct {
	Assistant *Assistant
	Store     history.Store
	Upload    upload.Guard
	// HistoryLimit caps GET /api/chat/history when no limit is asked for.
	HistoryLimit int
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	ex, err := h.Assistant.Ask(r.Context(), auth.ConversationID(r.Context()), req.Message)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ex)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := h.HistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respond.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	list, err := h.Store.List(r.Context(), auth.ConversationID(r.Context()), limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"history": list})
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Clear(r.Context(), auth.ConversationID(r.Context())); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Safety accepts a site photo as "safety_image" and returns a safety guide.
func (h *Handler) Safety(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.Upload.Open(w, r, "safety_image", upload.Image)
	if err != nil {
		respond.Error(w, upload.Status(err), err.Error())
		return
	}
	file.Close()

	guide, err := h.Assistant.SafetyGuide(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"filename": header.Filename, "analysis": guide})
}

type scheduleRequest struct {
	Tasks []schedule.Task `json:"tasks"`
}

// Schedule lays out the tasks from today and adds the model's review.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	s, err := schedule.Create(req.Tasks, time.Now())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	insights, err := h.Assistant.AnalyzeSchedule(r.Context(), req.Tasks)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"schedule": s, "insights": insights})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, history.ErrNoConversation):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotConfigured):
		respond.Error(w, http.StatusServiceUnavailable, "Assistant is not configured")
	case errors.Is(err, ErrCompletion):
		log.Printf("assistant: %v", err)
		respond.Error(w, http.StatusBadGateway, "Assistant is unavailable, try again later")
	default:
		log.Printf("assistant: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Internal error")
	}
}
