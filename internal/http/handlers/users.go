package handlers

import (
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/http/middleware"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"
	"github.com/stevenadel/iti-events-server/internal/utils"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Birthdate string      `json:"birthdate"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      models.Role `json:"role"`
}

type updateUserRequest struct {
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	Birthdate *string      `json:"birthdate"`
	Email     *string      `json:"email"`
	Password  *string      `json:"password"`
	Role      *models.Role `json:"role"`
	IsActive  *bool        `json:"isActive"`
}

func userService(c *gin.Context) services.UserService {
	return services.UserService{
		Users:     repositories.UserRepository{},
		RequestID: requestID(c),
	}
}

// GET /api/v1/users
func GetUsers(c *gin.Context) {
	users, err := userService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/v1/users
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	birthdate, err := utils.ParseDate(req.Birthdate)
	if err != nil && req.Birthdate != "" {
		RespondError(c, http.StatusBadRequest, "Birthdate must be in YYYY-MM-DD format")
		return
	}

	user, err := userService(c).Create(req.FirstName, req.LastName, birthdate, req.Email, req.Password, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GET /api/v1/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if !canAccessUser(c, id) {
		return
	}

	user, err := userService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /api/v1/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if !canAccessUser(c, id) {
		return
	}

	var req updateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	in := models.UserUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if req.Birthdate != nil {
		birthdate, err := utils.ParseDate(*req.Birthdate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "Birthdate must be in YYYY-MM-DD format")
			return
		}
		in.Birthdate = &birthdate
	}

	// Role and activation changes are admin only.
	actor, _ := middleware.CurrentUser(c)
	if actor.Role == models.RoleAdmin {
		in.Role = req.Role
		in.IsActive = req.IsActive
	} else if req.Role != nil || req.IsActive != nil {
		RespondError(c, http.StatusForbidden, "You don't have permission to change roles")
		return
	}

	user, err := userService(c).Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/v1/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := userService(c).Deactivate(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// canAccessUser allows a user through to their own record and admins to any.
func canAccessUser(c *gin.Context, id int64) bool {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization token is required")
		return false
	}
	if actor.Role != models.RoleAdmin && actor.ID != id {
		RespondError(c, http.StatusForbidden, "You don't have permission to access this resource")
		return false
	}
	return true
}
