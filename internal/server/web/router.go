// Package web is the HTML surface: gin router, form handlers and the
// session guard in front of the prediction pages.
package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/reviewpulse/internal/logging"
	"github.com/dmitrijs2005/reviewpulse/internal/server/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "rp_session"

// Handlers wires the services into the HTTP form handlers.
type Handlers struct {
	users       *services.UserService
	predictions *services.PredictionService
	logger      logging.Logger
}

func NewHandlers(users *services.UserService, predictions *services.PredictionService, logger logging.Logger) *Handlers {
	return &Handlers{users: users, predictions: predictions, logger: logger}
}

// NewRouter builds the gin engine with all routes registered. The predict
// and history pages sit behind the session guard; everything else is public.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", h.Home)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	authorized := r.Group("")
	authorized.Use(h.RequireSession())
	{
		authorized.GET("/predict", h.PredictForm)
		authorized.POST("/predict", h.Predict)
		authorized.GET("/history", h.History)
	}

	return r
}
