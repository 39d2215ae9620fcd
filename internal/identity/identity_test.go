package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestContext(headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestCurrent(t *testing.T) {
	provider := NewHeaderProvider()

	t.Run("signed in", func(t *testing.T) {
		user, ok := provider.Current(requestContext(map[string]string{
			"X-User-ID":    "user-1",
			"X-User-Name":  "Jordan Lee",
			"X-User-Email": "jordan@example.com",
			"X-User-Phone": "+1 555 0100",
		}))
		require.True(t, ok)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "Jordan Lee", user.Name)
		assert.Equal(t, "jordan@example.com", user.Email)
		assert.Equal(t, "+1 555 0100", user.Phone)
	})

	t.Run("name defaults to Customer", func(t *testing.T) {
		user, ok := provider.Current(requestContext(map[string]string{
			"X-User-ID": "user-2",
		}))
		require.True(t, ok)
		assert.Equal(t, "Customer", user.Name)
	})

	t.Run("anonymous", func(t *testing.T) {
		user, ok := provider.Current(requestContext(nil))
		assert.False(t, ok)
		assert.Nil(t, user)
	})
}
