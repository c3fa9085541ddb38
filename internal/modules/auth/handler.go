package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/middleware"
	"github.com/homeline/storefront/internal/pkg/response"
)

type LoginDTO struct {
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Handler struct {
	svc    *Service
	cookie string
	guards []gin.HandlerFunc
}

// NewHandler serves the admin session routes. Guards run before login, which
// is where the login rate limiter goes.
func NewHandler(svc *Service, cookieName string, guards ...gin.HandlerFunc) *Handler {
	if cookieName == "" {
		cookieName = middleware.DefaultCookieName
	}
	return &Handler{svc: svc, cookie: cookieName, guards: guards}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	login := append(append([]gin.HandlerFunc{}, h.guards...), h.login)
	a.POST("/login", login...)
	a.POST("/logout", h.logout)
	a.GET("/check", authMW, h.check)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, expires, err := h.svc.Login(dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrLoginDisabled):
			response.ServiceUnavailable(c, "admin login is not configured")
		case errors.Is(err, ErrWrongPassword):
			response.ForbiddenMsg(c, "wrong password")
		default:
			response.InternalError(c, err)
		}
		return
	}
	h.setCookie(c, token, int(h.svc.TTL().Seconds()))
	response.OK(c, loginResponse{Token: token, ExpiresAt: expires})
}

func (h *Handler) logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.NoContent(c)
}

func (h *Handler) check(c *gin.Context) {
	response.OK(c, gin.H{"admin": middleware.IsAdmin(c)})
}

func (h *Handler) setCookie(c *gin.Context, token string, maxAge int) {
	secure := c.Request.TLS != nil
	c.SetCookie(h.cookie, token, maxAge, "/", "", secure, true)
}
