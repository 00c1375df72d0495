package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"server/internal/sqlinline"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type mailDTO struct {
	ID          string    `json:"id"`
	From        string    `json:"from"`
	Subject     string    `json:"subject"`
	Preview     string    `json:"preview"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
	Starred     bool      `json:"starred"`
	Archived    bool      `json:"archived"`
	Attachments int       `json:"attachments"`
	Category    string    `json:"category"`
}

func (a *App) MailList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListMails)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load mail")
		return
	}
	defer rows.Close()

	items := []mailDTO{}
	for rows.Next() {
		var m mailDTO
		if err := rows.Scan(&m.ID, &m.From, &m.Subject, &m.Preview, &m.Timestamp,
			&m.Read, &m.Starred, &m.Archived, &m.Attachments, &m.Category); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load mail")
			return
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load mail")
		return
	}

	a.json(w, http.StatusOK, items)
}

type composeMailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// mailPreview truncates a body the way list views display it.
func mailPreview(body string) string {
	const max = 120
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}

func (a *App) MailCompose(w http.ResponseWriter, r *http.Request) {
	var req composeMailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.To == "" || req.Subject == "" || req.Body == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "to, subject, body required")
		return
	}

	m := mailDTO{
		ID:       uuid.NewString(),
		From:     "You",
		Subject:  req.Subject,
		Preview:  mailPreview(req.Body),
		Read:     true,
		Category: "outbox",
	}

	err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertMail,
		m.ID, m.From, m.Subject, m.Preview, req.To).Scan(&m.Timestamp)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert mail failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to send mail")
		return
	}

	a.json(w, http.StatusCreated, m)
	a.Metrics.Notify()
}

func (a *App) MailArchive(w http.ResponseWriter, r *http.Request) {
	mailID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(mailID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "mail not found")
		return
	}

	var id string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectMail, mailID).Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "mail not found")
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QArchiveMail, mailID); err != nil {
		a.Logger.Error().Err(err).Msg("archive mail failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to archive mail")
		return
	}

	a.json(w, http.StatusOK, map[string]any{"archived": true})
}

func (a *App) MailDelete(w http.ResponseWriter, r *http.Request) {
	mailID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(mailID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "mail not found")
		return
	}

	var id string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectMail, mailID).Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "mail not found")
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QDeleteMail, mailID); err != nil {
		a.Logger.Error().Err(err).Msg("delete mail failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete mail")
		return
	}

	a.json(w, http.StatusOK, map[string]any{"deleted": true})
}
