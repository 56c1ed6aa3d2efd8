package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/Convosum/internal/core"
	db "github.com/markdave123-py/Convosum/internal/core/database"
	"github.com/markdave123-py/Convosum/internal/models"
	"github.com/markdave123-py/Convosum/internal/services"
)

type ChatHandler struct {
	chats *services.ChatService
}

func NewChatHandler(chats *services.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

type storeMessageRequest struct {
	ConversationID string     `json:"conversation_id"`
	UserID         string     `json:"user_id"`
	Message        string     `json:"message"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

func (h *ChatHandler) StoreMessage(w http.ResponseWriter, r *http.Request) {
	var req storeMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	msg := &models.ChatMessage{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Message:        req.Message,
	}
	if req.Timestamp != nil {
		msg.Timestamp = *req.Timestamp
	}

	if err := h.chats.StoreMessage(r.Context(), msg); err != nil {
		writeError(w, http.StatusInternalServerError, "could not store message")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "stored"})
}

func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversation_id")

	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msgs, err := h.chats.ConversationHistory(r.Context(), conversationID, filter)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not fetch conversation")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversation_id")

	if err := h.chats.DeleteConversation(r.Context(), conversationID); err != nil {
		writeError(w, http.StatusInternalServerError, "could not delete conversation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

type summarizeRequest struct {
	ConversationID string `json:"conversation_id"`
}

func (h *ChatHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	summary, err := h.chats.Summarize(r.Context(), req.ConversationID)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

type insightsRequest struct {
	ConversationID string `json:"conversation_id"`
	InsightType    string `json:"insight_type"`
}

func (h *ChatHandler) Insights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	insight, err := h.chats.Insights(r.Context(), req.ConversationID, services.InsightKind(req.InsightType))
	if err != nil {
		writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insight": insight})
}

func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	q := r.URL.Query()

	filter, err := filterFromQuery(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page := intQueryParam(q, "page", 1)
	limit := intQueryParam(q, "limit", 10)

	msgs, err := h.chats.UserHistory(r.Context(), userID, page, limit, filter)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no chats found for this user")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not fetch chats")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "conversation not found")
	case errors.Is(err, core.ErrAnalysisUnavailable):
		writeError(w, http.StatusBadGateway, "analysis unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

// filterFromQuery reads start_date, end_date and keywords. Dates accept
// RFC 3339 or a bare YYYY-MM-DD. Blank keyword entries are dropped so
// "a,,b" filters on two keywords, not three.
func filterFromQuery(q url.Values) (db.MessageFilter, error) {
	var filter db.MessageFilter

	if raw := q.Get("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, errors.New("invalid start_date")
		}
		filter.Start = &t
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, errors.New("invalid end_date")
		}
		filter.End = &t
	}
	if raw := q.Get("keywords"); raw != "" {
		for _, kw := range strings.Split(raw, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				filter.Keywords = append(filter.Keywords, kw)
			}
		}
	}
	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func intQueryParam(q url.Values, key string, def int) int {
	raw := q.Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
