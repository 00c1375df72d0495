package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"server/internal/middleware"
	"server/internal/sqlinline"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type campaignDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Goal        float64 `json:"goal"`
	Raised      float64 `json:"raised"`
	Donors      int     `json:"donors"`
	DaysLeft    int     `json:"daysLeft"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
	Organizer   string  `json:"organizer,omitempty"`
	Featured    bool    `json:"featured"`
	Urgent      bool    `json:"urgent"`
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListCampaigns)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	defer rows.Close()

	items := []campaignDTO{}
	for rows.Next() {
		var c campaignDTO
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Goal, &c.Raised, &c.Donors,
			&c.DaysLeft, &c.Category, &c.Image, &c.Organizer, &c.Featured, &c.Urgent); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
			return
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}

	a.json(w, http.StatusOK, items)
}

type createCampaignRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Goal        float64 `json:"goal"`
	DaysLeft    int     `json:"daysLeft"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Organizer   string  `json:"organizer"`
	Featured    bool    `json:"featured"`
	Urgent      bool    `json:"urgent"`
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" || req.Description == "" || req.Goal <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "title, description and a positive goal required")
		return
	}

	organizer := req.Organizer
	if organizer == "" {
		organizer = "Alumni Association"
	}

	c := campaignDTO{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		DaysLeft:    req.DaysLeft,
		Category:    req.Category,
		Image:       req.Image,
		Organizer:   organizer,
		Featured:    req.Featured,
		Urgent:      req.Urgent,
	}

	var insertedID string
	err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertCampaign,
		c.ID, c.Title, c.Description, c.Goal, c.DaysLeft, c.Category, c.Image, c.Organizer, c.Featured, c.Urgent).
		Scan(&insertedID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create campaign")
		return
	}

	a.json(w, http.StatusCreated, c)
	a.Metrics.Notify()
}

type donateRequest struct {
	Amount float64 `json:"amount"`
}

type donationReceiptDTO struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Receipt   string    `json:"receipt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *App) CampaignsDonate(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(campaignID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}

	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	var id string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectCampaign, campaignID).Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}

	// Anonymous donations are allowed; a signed-in donor is attributed.
	userID := middleware.UserIDFromContext(r.Context())

	rec := donationReceiptDTO{
		ID:      uuid.NewString(),
		Amount:  req.Amount,
		Receipt: fmt.Sprintf("REC-%d", time.Now().UnixMilli()),
		Status:  "completed",
	}

	err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertDonation,
		rec.ID, campaignID, userID, rec.Amount, rec.Receipt).Scan(&rec.CreatedAt)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record donation")
		return
	}
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QApplyDonationToCampaign, rec.Amount, campaignID); err != nil {
		a.Logger.Error().Err(err).Msg("apply donation to campaign failed")
	}

	a.json(w, http.StatusCreated, rec)
	a.Metrics.Notify()
}
