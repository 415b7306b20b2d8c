package controller

import (
	"net/http"

	"vitrina/toast"
)

// Notifier is the toast slot admin actions report to
type Notifier interface {
	Success(message string)
	Error(message string)
	Hide()
	Current() toast.Toast
}

// ToastController exposes the admin toast slot
type ToastController struct {
	notifier Notifier
}

// NewToastController creates a new ToastController
func NewToastController(notifier Notifier) *ToastController {
	return &ToastController{notifier: notifier}
}

// Get handles GET /admin/toast
func (c *ToastController) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.notifier.Current(), "Toast")
}

// Dismiss handles DELETE /admin/toast
func (c *ToastController) Dismiss(w http.ResponseWriter, r *http.Request) {
	c.notifier.Hide()
	w.WriteHeader(http.StatusNoContent)
}
