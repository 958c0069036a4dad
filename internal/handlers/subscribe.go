// Package handlers holds the HTTP routes of the server.
package handlers

import (
	"net/http"

	"github.com/dmitrymomot/goodvibes/internal/app"
	"github.com/dmitrymomot/goodvibes/internal/handlers/views"
	"github.com/dmitrymomot/goodvibes/pkg/signup"
)

// Subscribe serves the signup page and accepts form or JSON submissions.
type Subscribe struct {
	form *signup.Form
}

// NewSubscribe creates the handler.
func NewSubscribe(form *signup.Form) *Subscribe {
	return &Subscribe{form: form}
}

func (h *Subscribe) Routes(r app.Router) {
	r.GET("/", h.page)
	r.POST("/subscribe", h.submit)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (h *Subscribe) page(c app.Context) error {
	return c.Render(http.StatusOK, views.Signup(views.SignupPage{}))
}

func (h *Subscribe) submit(c app.Context) error {
	jsonRequest := c.WantsJSON()

	var email string
	if jsonRequest {
		var req subscribeRequest
		if err := c.BindJSON(&req); err != nil {
			return app.ErrBadRequest(signup.MsgInvalidEmail, app.WithError(err))
		}
		email = req.Email
	} else {
		email = c.Form("email")
	}

	res := h.form.Submit(c.Context(), email)
	status := statusFor(res.Outcome)

	if jsonRequest {
		return c.JSON(status, subscribeResponse{OK: res.OK(), Message: res.Message})
	}

	page := views.SignupPage{Email: res.Email, Message: res.Message, Kind: "error"}
	if res.OK() {
		page.Email = ""
		page.Kind = "success"
	}
	return c.Render(status, views.Signup(page))
}

func statusFor(o signup.Outcome) int {
	switch o {
	case signup.OutcomeSubscribed:
		return http.StatusCreated
	case signup.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case signup.OutcomeDuplicate:
		return http.StatusConflict
	case signup.OutcomeBusy:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
