package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/volunteer-auth/internal/models"
	"github.com/vaughan-dsouza/volunteer-auth/internal/store"
	"github.com/vaughan-dsouza/volunteer-auth/internal/utils"
	"github.com/vaughan-dsouza/volunteer-auth/internal/validation"
)

const (
	msgRegisterRequired   = "name, email and password are required"
	msgPasswordTooLong    = "password must be at most 72 bytes"
	msgInvalidJSON        = "Invalid JSON body"
	msgEmailExists        = "Email already exists"
	msgMissingCredentials = "Missing credentials"
	msgInvalidCredentials = "Invalid credentials"
	msgServerError        = "Server error"
	msgUserCreated        = "User created successfully"
)

// WelcomeSender schedules the post-registration notification without waiting for it.
type WelcomeSender interface {
	Send(email string) bool
}

type AuthOptions struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type AuthHandler struct {
	Users    store.UserStore
	Welcome  WelcomeSender
	Logger   *logrus.Logger
	opts     AuthOptions
	validate *validation.Validator

	// compared against when the email is unknown, so both login failures cost a bcrypt round
	dummyHash string
}

func NewAuthHandler(users store.UserStore, welcome WelcomeSender, logger *logrus.Logger, opts AuthOptions) (*AuthHandler, error) {
	if len(opts.Secret) == 0 {
		return nil, utils.ErrSecretNotConfigured
	}

	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	dummy, err := utils.HashPassword(hex.EncodeToString(seed), opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &AuthHandler{
		Users:     users,
		Welcome:   welcome,
		Logger:    logger,
		opts:      opts,
		validate:  validation.New(),
		dummyHash: dummy,
	}, nil
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Role     string `json:"role,omitempty"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResp struct {
	OK      bool              `json:"ok"`
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

type loginUser struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type loginResp struct {
	OK    bool      `json:"ok"`
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

func (h *AuthHandler) log(r *http.Request) *logrus.Entry {
	entry := logrus.NewEntry(h.Logger)
	if id := chimw.GetReqID(r.Context()); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = models.NormalizeEmail(req.Email)

	if err := h.validate.Struct(req); err != nil {
		if validation.Fields(err)["password"] == "maxbytes" {
			utils.JSONError(w, http.StatusBadRequest, msgPasswordTooLong)
			return
		}
		utils.JSONError(w, http.StatusBadRequest, msgRegisterRequired)
		return
	}

	hash, err := utils.HashPassword(req.Password, h.opts.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		utils.JSONError(w, http.StatusBadRequest, msgPasswordTooLong)
		return
	}
	if err != nil {
		h.log(r).WithError(err).Error("hash password failed")
		utils.JSONError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Name, req.Email, hash, models.ParseRole(req.Role))
	if errors.Is(err, store.ErrDuplicateEmail) {
		utils.JSONError(w, http.StatusConflict, msgEmailExists)
		return
	}
	if err != nil {
		h.log(r).WithError(err).WithField("email", req.Email).Error("create user failed")
		utils.JSONError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	// The outcome is already decided by the insert.
	if h.Welcome != nil {
		h.Welcome.Send(user.Email)
	}

	h.log(r).WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")

	utils.JSON(w, http.StatusCreated, registerResp{
		OK:      true,
		Message: msgUserCreated,
		User:    user.Public(),
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req.Email = models.NormalizeEmail(req.Email)

	if err := h.validate.Struct(req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	u, err := h.Users.FindUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.CheckPassword(h.dummyHash, req.Password)
		utils.JSONError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		h.log(r).WithError(err).Error("find user failed")
		utils.JSONError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		utils.JSONError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, _, err := utils.GenerateToken(u, h.opts.Secret, h.opts.TokenTTL)
	if err != nil {
		h.log(r).WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		utils.JSONError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	utils.JSON(w, http.StatusOK, loginResp{
		OK:    true,
		Token: token,
		User:  loginUser{ID: u.ID, Email: u.Email, Role: u.Role},
	})
}
