package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"server/internal/sqlinline"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type chatSummaryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	LastMessage string `json:"lastMessage"`
	Timestamp   string `json:"timestamp"`
	Unread      int64  `json:"unread"`
	Online      bool   `json:"online"`
}

type messageDTO struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

func (a *App) ChatsList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListConversations)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load chats")
		return
	}
	defer rows.Close()

	items := []chatSummaryDTO{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load chats")
			return
		}
		items = append(items, chatSummaryDTO{
			ID:     id,
			Name:   name,
			Avatar: fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(name)),
			Online: true,
		})
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load chats")
		return
	}

	for i := range items {
		var content string
		var sentAt time.Time
		err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectLastMessage, items[i].ID).Scan(&content, &sentAt)
		switch {
		case err == nil:
			items[i].LastMessage = content
			items[i].Timestamp = sentAt.Local().Format("15:04")
		case errors.Is(err, pgx.ErrNoRows):
			// conversation without messages yet
		default:
			a.error(w, http.StatusInternalServerError, "internal", "failed to load chats")
			return
		}

		if err := a.SQL.QueryRow(r.Context(), sqlinline.QCountUnreadInConversation, items[i].ID).Scan(&items[i].Unread); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load chats")
			return
		}
	}

	a.json(w, http.StatusOK, items)
}

func (a *App) ChatMessages(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	if _, err := uuid.Parse(chatID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "chat not found")
		return
	}

	var id string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectConversation, chatID).Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "chat not found")
		return
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListMessages, chatID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load messages")
		return
	}
	defer rows.Close()

	messages := []messageDTO{}
	for rows.Next() {
		var m messageDTO
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.Timestamp, &m.Read); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load messages")
			return
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load messages")
		return
	}

	a.json(w, http.StatusOK, map[string]any{"id": id, "messages": messages})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (a *App) ChatSend(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	if _, err := uuid.Parse(chatID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "chat not found")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content required")
		return
	}

	senderID := a.currentUserID(r)
	if senderID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var convID string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectConversation, chatID).Scan(&convID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "chat not found")
		return
	}

	msg := messageDTO{ID: uuid.NewString(), Sender: senderID, Content: req.Content}
	err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertMessage, msg.ID, convID, senderID, req.Content).Scan(&msg.Timestamp)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert message failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to send message")
		return
	}

	a.json(w, http.StatusCreated, msg)
	a.Metrics.Notify()
}
