// Package identity abstracts the upstream auth session. In production the
// mobile client sends the signed-in user's profile with each request; the
// service treats it as a black box and only snapshots the fields onto orders.
package identity

import (
	"github.com/gin-gonic/gin"

	"github.com/ritemedical/storefront-service/internal/models"
)

// Provider reports whether a user is signed in for the current request and
// exposes the basic profile fields.
type Provider interface {
	// Current returns the signed-in user, or false when the request is
	// anonymous.
	Current(c *gin.Context) (*models.User, bool)
}

// HeaderProvider reads the user identity from request headers set by the
// authenticating frontend.
type HeaderProvider struct{}

// NewHeaderProvider returns a header-based identity provider
func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

// Current extracts the user from X-User-* headers. A missing X-User-ID
// means not signed in.
func (p *HeaderProvider) Current(c *gin.Context) (*models.User, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		return nil, false
	}

	name := c.GetHeader("X-User-Name")
	if name == "" {
		name = "Customer"
	}

	return &models.User{
		ID:    id,
		Name:  name,
		Email: c.GetHeader("X-User-Email"),
		Phone: c.GetHeader("X-User-Phone"),
	}, true
}
