package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/security"
	"teamop.dk/bosted/web/common"
)

const identityKey = "identity"

// Authentication checks for a valid staff Bearer token and stores the
// identity on the context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Manglende adgangsnøgle"))
			return
		}

		claims, err := security.ParseIdentityToken(strings.TrimSpace(parts[1]), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Ugyldig eller udløbet adgangsnøgle"))
			return
		}

		c.Set(identityKey, claims.StaffIdentity)

		ctx := c.Request.Context()
		logger := logging.FromContext(ctx).With("user_id", claims.UserID)
		c.Request = c.Request.WithContext(logging.ContextWithLogger(ctx, logger))

		c.Next()
	}
}

// Identity returns the staff identity set by Authentication.
func Identity(c *gin.Context) (security.StaffIdentity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return security.StaffIdentity{}, false
	}
	identity, ok := value.(security.StaffIdentity)
	return identity, ok
}
