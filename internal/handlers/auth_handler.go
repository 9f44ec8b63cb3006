package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

type LoginRequest struct {
	ID       string      `json:"id" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required"`
}

// Login checks credentials against the record matching both id and the
// claimed role. Logging in as a role your record does not have fails the
// same way as a wrong password.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "invalid credentials"})
		return
	}

	user, err := h.Store.FindByIDAndRole(c.Request.Context(), req.ID, req.Role)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "invalid credentials"})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Str("id", req.ID).Msg("login: store lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "server error"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "invalid credentials"})
		return
	}

	token, err := h.Tokens.Generate(user.ID, user.Role)
	if err != nil {
		h.Log.Error().Err(err).Msg("login: token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"name":    user.Name,
		"role":    user.Role,
	})
}

type SignupRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Signup creates a patient account. The role is never taken from the
// request; only the seeded doctor account exists with the doctor role.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "id, password and name are required"})
		return
	}

	hashed, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("signup: password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "server error"})
		return
	}

	user := &models.User{
		Role:          models.RolePatient,
		ID:            req.ID,
		Password:      hashed,
		Name:          req.Name,
		MedicalInfo:   models.DefaultMedicalInfo,
		Notifications: []models.Notification{},
	}

	err = h.Store.Insert(c.Request.Context(), user)
	if errors.Is(err, store.ErrDuplicateID) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "id already exists"})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Str("id", req.ID).Msg("signup: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "account created"})
}
