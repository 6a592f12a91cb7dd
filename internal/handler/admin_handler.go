package handler

import (
	"net/http"

	"creditsea/internal/middleware"
	"creditsea/internal/model"
	"creditsea/internal/policy"
	"creditsea/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AdminHandler handles user administration requests
type AdminHandler struct {
	service service.UserService
	log     logrus.FieldLogger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.UserService, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{service: s, log: log}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, h.log, err, "fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := h.service.DeleteUser(c.Request.Context(), middleware.GetIdentity(c), userID)
	if err != nil {
		respondError(c, h.log, err, "delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "user": user})
}

func (h *AdminHandler) EditUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.SetRole(c.Request.Context(), middleware.GetIdentity(c), userID, req.Role)
	if err != nil {
		respondError(c, h.log, err, "update user role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user": user})
}

// RegisterAdminRoutes registers user administration routes
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/getAllUsers", middleware.Authorize(policy.ListUsers), h.ListUsers)
	rg.DELETE("/delete/:id", middleware.Authorize(policy.DeleteUser), h.DeleteUser)
	rg.PATCH("/editUser/:id", middleware.Authorize(policy.ChangeUserRole), h.EditUser)
}
