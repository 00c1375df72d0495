package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/sqlinline"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	University     string `json:"university"`
	Department     string `json:"department"`
	GraduationYear int    `json:"graduationYear"`
	Location       string `json:"location"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	University     string `json:"university,omitempty"`
	Department     string `json:"department,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
	Location       string `json:"location,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name, email, password required")
		return
	}

	var existingID string
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserIDByEmail, req.Email).Scan(&existingID)
	if err == nil {
		a.error(w, http.StatusConflict, "conflict", domain.ErrDuplicateEmail.Error())
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		a.Logger.Error().Err(err).Msg("lookup user by email failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	// New signups without a stated location fall back to the GeoIP country
	// of the request, when a database is configured.
	location := req.Location
	if location == "" {
		location = middleware.CountryFromContext(r.Context())
	}

	user := userDTO{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Role:           string(domain.UserRoleAlumni),
		University:     req.University,
		Department:     req.Department,
		GraduationYear: req.GraduationYear,
		Location:       location,
		Avatar:         fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(req.Name)),
	}

	var insertedID string
	err = a.SQL.QueryRow(r.Context(), sqlinline.QInsertUser,
		user.ID, user.Name, user.Email, string(hash), user.Role,
		user.University, user.Department, user.GraduationYear, user.Location, user.Avatar).
		Scan(&insertedID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	token, err := middleware.SignJWT(a.JWTSecret, user.ID, user.Role, user.Email, user.Name, a.JWTTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}

	var user userDTO
	var hash string
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByEmail, req.Email).
		Scan(&user.ID, &user.Name, &user.Email, &hash, &user.Role,
			&user.University, &user.Department, &user.GraduationYear, &user.Location, &user.Avatar)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token, err := middleware.SignJWT(a.JWTSecret, user.ID, user.Role, user.Email, user.Name, a.JWTTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (a *App) AuthMe(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var user userDTO
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role,
			&user.University, &user.Department, &user.GraduationYear, &user.Location, &user.Avatar)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	a.json(w, http.StatusOK, user)
}
