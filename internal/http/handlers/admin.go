package handlers

import (
	"net/http"
	"time"

	"server/internal/sqlinline"
)

func (a *App) AdminUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QAdminListUsers)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load users")
		return
	}
	defer rows.Close()

	items := []userDTO{}
	for rows.Next() {
		var u userDTO
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role,
			&u.University, &u.Department, &u.GraduationYear, &u.Location, &u.Avatar); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load users")
			return
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load users")
		return
	}

	a.json(w, http.StatusOK, items)
}

type adminDonationDTO struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     string    `json:"status"`
	Receipt    string    `json:"receipt,omitempty"`
	Campaign   string    `json:"campaign,omitempty"`
	DonorName  string    `json:"donorName,omitempty"`
	DonorEmail string    `json:"donorEmail,omitempty"`
}

func (a *App) AdminDonations(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QAdminListDonations)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	defer rows.Close()

	items := []adminDonationDTO{}
	for rows.Next() {
		var d adminDonationDTO
		if err := rows.Scan(&d.ID, &d.Amount, &d.CreatedAt, &d.Status, &d.Receipt,
			&d.Campaign, &d.DonorName, &d.DonorEmail); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
			return
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	a.json(w, http.StatusOK, items)
}
