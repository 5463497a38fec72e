package login

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamop.dk/bosted/model"
	"teamop.dk/bosted/security"
	web "teamop.dk/bosted/web/common"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type Endpoint struct {
	auth      Authenticator
	jwtSecret []byte
	tokenTTL  time.Duration
}

func Register(r gin.IRoutes, auth Authenticator, jwtSecret []byte, tokenTTL time.Duration) {
	endpoint := &Endpoint{auth: auth, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
	r.POST("/login", endpoint.Login)
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

type LoginResultDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

func (ep *Endpoint) Login(c *gin.Context) {
	var body LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	user, err := ep.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		web.RespondError(c, "", err)
		return
	}

	identity := security.IdentityOf(*user)
	token, err := security.CreateIdentityToken(identity, ep.jwtSecret, ep.tokenTTL)
	if err != nil {
		web.RespondError(c, "Login mislykkedes", err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(LoginResultDTO{
		Token:     token,
		ExpiresAt: time.Now().Add(ep.tokenTTL).UTC(),
		UserID:    identity.UserID,
		Name:      identity.Name,
		Email:     identity.Email,
	}))
}
