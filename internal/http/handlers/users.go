package handlers

import (
	"net/http"

	"transitbook/internal/domain"

	"github.com/gin-gonic/gin"
)

// GET /api/users
func ListUsers(c *gin.Context) {
	out, err := authService(c).ListUsers(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var in createUserRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := authService(c).CreateUser(c.Request.Context(), in.Username, in.Password, domain.Role(in.Role))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
