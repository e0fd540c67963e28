package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/volunteer-auth/internal/utils"
)

type Handler struct {
	Auth *AuthHandler
}

func NewHandler(auth *AuthHandler) *Handler {
	return &Handler{Auth: auth}
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	utils.JSONError(w, http.StatusMethodNotAllowed, "Use POST")
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.JSONError(w, http.StatusNotFound, "Not found")
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
