package users

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type UsersHandler struct {
	Repository UserRepository
}

func NewHandler(r UserRepository) *UsersHandler {
	return &UsersHandler{
		Repository: r,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users", security.Authorize("admin"), h.RegisterUser)
	router.PATCH("/users/:id", security.Authorize("user"), h.UpdateUser)
	router.GET("/users/:id", security.Authorize("user"), h.GetUser)
	router.GET("/users", security.Authorize("moderator"), h.GetUserList)
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		log.Println("Error binding JSON:", err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := h.Repository.PersistUser(req, hashedPassword); err != nil {
		custom_error.RespondHTTP(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !security.IsOwnerOrAllowed(c, userID, "admin") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": "You are not allowed to access this resource"})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to find user")
		return
	}

	changes := &UserChanges{}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		passwordHash := string(hashedPassword)
		changes.PasswordHash = &passwordHash
	}

	if req.FullName != nil && *req.FullName != user.FullName {
		changes.FullName = req.FullName
	}

	// Only admins may change role or branch assignment.
	if req.Role != nil && *req.Role != user.Role {
		if !security.IsAllowed(c, "admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": "Only admins can change roles"})
			return
		}
		changes.Role = req.Role
	}
	if req.BranchID != nil {
		if !security.IsAllowed(c, "admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": "Only admins can change branch assignment"})
			return
		}
		changes.BranchID = req.BranchID
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := h.Repository.UpdateUser(userID, changes); err != nil {
		custom_error.RespondHTTP(c, err, "Failed to update user")
		return
	}

	updatedUser, err := h.Repository.GetUser(userID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Failed to get updated user")
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	if !security.IsOwnerOrAllowed(c, userID, "moderator") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": "You are not allowed to access this resource"})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}
