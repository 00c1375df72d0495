package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"server/internal/sqlinline"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type eventDTO struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Date             string  `json:"date"`
	Time             string  `json:"time,omitempty"`
	EndTime          string  `json:"endTime,omitempty"`
	Location         string  `json:"location,omitempty"`
	Address          string  `json:"address,omitempty"`
	Type             string  `json:"type,omitempty"`
	Category         string  `json:"category,omitempty"`
	MaxAttendees     int     `json:"maxAttendees,omitempty"`
	CurrentAttendees int     `json:"currentAttendees"`
	Price            float64 `json:"price"`
	Image            string  `json:"image,omitempty"`
	Organizer        string  `json:"organizer,omitempty"`
	Featured         bool    `json:"featured"`
}

func (a *App) EventsList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListEvents)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load events")
		return
	}
	defer rows.Close()

	items := []eventDTO{}
	for rows.Next() {
		var ev eventDTO
		var date time.Time
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &date, &ev.Time, &ev.EndTime,
			&ev.Location, &ev.Address, &ev.Type, &ev.Category, &ev.MaxAttendees,
			&ev.CurrentAttendees, &ev.Price, &ev.Image, &ev.Organizer, &ev.Featured); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load events")
			return
		}
		ev.Date = date.Format("2006-01-02")
		items = append(items, ev)
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load events")
		return
	}

	a.json(w, http.StatusOK, items)
}

type createEventRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	EndTime      string  `json:"endTime"`
	Location     string  `json:"location"`
	Address      string  `json:"address"`
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	MaxAttendees int     `json:"maxAttendees"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Organizer    string  `json:"organizer"`
	Featured     bool    `json:"featured"`
}

func (a *App) EventsCreate(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" || req.Description == "" || req.Date == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title, description, date required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "date must be YYYY-MM-DD")
		return
	}

	organizer := req.Organizer
	if organizer == "" {
		organizer = "Alumni Association"
	}

	ev := eventDTO{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		EndTime:      req.EndTime,
		Location:     req.Location,
		Address:      req.Address,
		Type:         req.Type,
		Category:     req.Category,
		MaxAttendees: req.MaxAttendees,
		Price:        req.Price,
		Image:        req.Image,
		Organizer:    organizer,
		Featured:     req.Featured,
	}

	var insertedID string
	err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertEvent,
		ev.ID, ev.Title, ev.Description, ev.Date, ev.Time, ev.EndTime, ev.Location, ev.Address,
		ev.Type, ev.Category, ev.MaxAttendees, ev.Price, ev.Image, ev.Organizer, ev.Featured).
		Scan(&insertedID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert event failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create event")
		return
	}

	a.json(w, http.StatusCreated, ev)
	a.Metrics.Notify()
}

func (a *App) EventsRegister(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(eventID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "event not found")
		return
	}
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var id string
	var maxAttendees, currentAttendees int
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectEventForRegistration, eventID).
		Scan(&id, &maxAttendees, &currentAttendees); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "event not found")
		return
	}

	if maxAttendees > 0 && currentAttendees >= maxAttendees {
		a.error(w, http.StatusConflict, "conflict", "event is full")
		return
	}

	var one int
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectRegistration, eventID, userID).Scan(&one)
	if err == nil {
		// already registered; nothing changed, so no broadcast
		a.json(w, http.StatusOK, map[string]any{"registered": true})
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QInsertRegistration, eventID, userID); err != nil {
		a.Logger.Error().Err(err).Msg("insert registration failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QIncrementAttendees, eventID); err != nil {
		a.Logger.Error().Err(err).Msg("increment attendees failed")
	}

	a.json(w, http.StatusOK, map[string]any{"registered": true})
	a.Metrics.Notify()
}
