package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"echochamber/auth"
	"echochamber/types"
)

// sessionCookie is the cookie holding the opaque session token. The
// store keeps a single session record, so the most recent login or
// verification wins: a later login from any client displaces the
// previous session and its cookie stops resolving.
const sessionCookie = "echo_session"

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyRequest struct {
	Email string `json:"email" binding:"required"`
}

// RegisterAuthRoutes registers the account endpoints.
func (s *Server) RegisterAuthRoutes(r *gin.Engine) {
	g := r.Group("/api/auth")
	g.POST("/signup", s.handleSignUp)
	g.POST("/login", s.handleLogIn)
	g.POST("/logout", s.handleLogOut)
	g.POST("/verify", s.handleVerify)
	g.GET("/me", s.handleCurrentUser)
}

func (s *Server) handleSignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if err := s.auth.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "account created; verify your email to log in",
	})
}

func (s *Server) handleLogIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, token, err := s.auth.LogIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		}
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleLogOut(c *gin.Context) {
	if err := s.auth.LogOut(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	user, token, err := s.auth.VerifyEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify account"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// requireUser resolves the session cookie to a user, or writes a 401
// and reports false.
func (s *Server) requireUser(c *gin.Context) (*types.User, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return nil, false
	}
	u, err := s.auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			clearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return nil, false
	}
	return u, true
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
