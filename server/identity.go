package storefrontserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
)

const (
	headerUserID      = "X-User-ID"
	headerCartSession = "X-Cart-Session"
)

// resolveCartIdentity derives the cart identity from the request headers.
// An authenticated user id takes precedence over the anonymous session
// token. Requests carrying neither get a fresh session token, echoed back
// in the response so the client can persist it.
func resolveCartIdentity(c *gin.Context) (cartdomain.Identity, bool) {
	if raw := strings.TrimSpace(c.GetHeader(headerUserID)); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			respondError(c, http.StatusBadRequest, cartdomain.ErrInvalidIdentity)
			return "", false
		}
		return cartdomain.UserIdentity(userID), true
	}

	token := strings.TrimSpace(c.GetHeader(headerCartSession))
	if token == "" {
		token = uuid.NewString()
		c.Header(headerCartSession, token)
	}
	identity, err := cartdomain.AnonymousIdentity(token)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return "", false
	}
	return identity, true
}

// resolveUserID reads the optional authenticated user id. Zero means
// unauthenticated.
func resolveUserID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.GetHeader(headerUserID))
	if raw == "" {
		return 0, true
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		respondError(c, http.StatusBadRequest, cartdomain.ErrInvalidIdentity)
		return 0, false
	}
	return userID, true
}
