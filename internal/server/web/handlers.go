package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/reviewpulse/internal/common"
)

// Home renders the landing page with links adjusted to the login state.
func (h *Handlers) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"User": h.currentUser(c),
	})
}

// RegisterForm renders the signup form. Logged-in users are sent home.
func (h *Handlers) RegisterForm(c *gin.Context) {
	if h.currentUser(c) != "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates the account and sends the user to the login page.
// Duplicate username or email yields one generic message with no hint
// which field collided.
func (h *Handlers) Register(c *gin.Context) {
	if h.currentUser(c) != "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	userName := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	_, err := h.users.Register(c.Request.Context(), userName, email, password)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/login?registered=1")
	case errors.Is(err, common.ErrorValidation):
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error":    "All fields are required.",
			"UserName": userName,
			"Email":    email,
		})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.HTML(http.StatusConflict, "register.html", gin.H{
			"Error":    "Username or email already exists.",
			"UserName": userName,
			"Email":    email,
		})
	default:
		h.logger.Error(c.Request.Context(), "registration failed", "error", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"Error": "Something went wrong. Please try again.",
		})
	}
}

// LoginForm renders the login form. Logged-in users are sent home.
func (h *Handlers) LoginForm(c *gin.Context) {
	if h.currentUser(c) != "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	data := gin.H{}
	if c.Query("registered") != "" {
		data["Message"] = "Account created. Please log in."
	}
	c.HTML(http.StatusOK, "login.html", data)
}

// Login authenticates the form credentials and sets the session cookie.
// Unknown user and wrong password produce the same message.
func (h *Handlers) Login(c *gin.Context) {
	if h.currentUser(c) != "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	userName := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	token, err := h.users.Login(c.Request.Context(), userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"Error":    "Invalid username or password.",
				"UserName": userName,
			})
			return
		}
		h.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Something went wrong. Please try again.",
		})
		return
	}

	setSessionCookie(c, token, 0)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout destroys the session and clears the cookie. Safe to call without
// a session.
func (h *Handlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		if err := h.users.Logout(c.Request.Context(), token); err != nil {
			h.logger.Warn(c.Request.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// PredictForm renders the review submission form.
func (h *Handlers) PredictForm(c *gin.Context) {
	c.HTML(http.StatusOK, "predict.html", gin.H{
		"User": c.GetString(ctxUserKey),
	})
}

// Predict classifies the submitted review and re-renders the form with
// the result. A failed history write downgrades to a warning; the label
// is still shown.
func (h *Handlers) Predict(c *gin.Context) {
	text := c.PostForm("text")

	result, err := h.predictions.Predict(c.Request.Context(), text)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.HTML(http.StatusBadRequest, "predict.html", gin.H{
				"User":  c.GetString(ctxUserKey),
				"Error": "Please enter a review.",
			})
			return
		}
		h.logger.Error(c.Request.Context(), "prediction failed", "error", err)
		c.HTML(http.StatusInternalServerError, "predict.html", gin.H{
			"User":  c.GetString(ctxUserKey),
			"Error": "Something went wrong. Please try again.",
			"Text":  text,
		})
		return
	}

	data := gin.H{
		"User":  c.GetString(ctxUserKey),
		"Label": result.Label,
		"Text":  strings.TrimSpace(text),
	}
	if !result.Stored {
		data["Warning"] = "Result was not saved to history."
	}
	c.HTML(http.StatusOK, "predict.html", data)
}

// History renders all stored predictions newest-first with per-label
// totals.
func (h *Handlers) History(c *gin.Context) {
	records, counts, err := h.predictions.History(c.Request.Context())
	if err != nil {
		h.logger.Error(c.Request.Context(), "history lookup failed", "error", err)
		c.HTML(http.StatusInternalServerError, "history.html", gin.H{
			"User":  c.GetString(ctxUserKey),
			"Error": "Something went wrong. Please try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "history.html", gin.H{
		"User":     c.GetString(ctxUserKey),
		"Records":  records,
		"Positive": counts["Positive"],
		"Negative": counts["Negative"],
		"Neutral":  counts["Neutral"],
	})
}
