package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UsersController serves the placeholder users resource.
type UsersController struct{}

func NewUsersController() *UsersController {
	return &UsersController{}
}

// GET /users
func (uc *UsersController) List(c *gin.Context) {
	c.String(http.StatusOK, "respond with a resource")
}

// GET /users/cool
func (uc *UsersController) Cool(c *gin.Context) {
	c.String(http.StatusOK, "You're so cool")
}
