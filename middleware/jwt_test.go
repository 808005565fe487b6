package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("u1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("HTTP header decoder", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("Authorization", "Bearer "+token)

		userID, username, err := JWT_decoder(c)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
		assert.Equal(t, "alice", username)
	})

	t.Run("Handshake decoder with Bearer prefix", func(t *testing.T) {
		userID, username, err := Socketio_JWT_decoder(map[string]interface{}{
			"authorization": "Bearer " + token,
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
		assert.Equal(t, "alice", username)
	})

	t.Run("Handshake decoder with bare token", func(t *testing.T) {
		userID, _, err := Socketio_JWT_decoder(map[string]interface{}{
			"authorization": token,
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})
}

func TestDecoderRejections(t *testing.T) {
	t.Run("Missing header", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		_, _, err := JWT_decoder(c)
		assert.Error(t, err)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, _, err := Socketio_JWT_decoder(map[string]interface{}{
			"authorization": "Bearer not.a.token",
		})
		assert.Error(t, err)
	})

	t.Run("Missing auth field", func(t *testing.T) {
		_, _, err := Socketio_JWT_decoder(map[string]interface{}{})
		assert.Error(t, err)
	})
}
