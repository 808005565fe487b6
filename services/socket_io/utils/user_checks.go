package socketio_utils

import (
	"fmt"

	"Gamenight/middleware"
	models "Gamenight/models/postgres"

	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection tries to resolve a client identity from the JWT
// carried in the handshake auth data. Returns false when no usable token is
// present; the client is then expected to authenticate as a guest via the
// 'authenticate' event. The user-record lookup is best-effort: an
// unreachable database does not invalidate a well-formed token.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, userID, username string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		return false, "", ""
	}

	if _, exists := authData["authorization"]; !exists {
		return false, "", ""
	}

	userID, username, err := middleware.Socketio_JWT_decoder(authData)
	if err != nil {
		fmt.Println("Error decoding JWT:", err)
		return false, "", ""
	}

	// Prefer the stored username when the record exists.
	if db != nil {
		var user models.User
		if result := db.Where("id = ?", userID).First(&user); result.Error == nil {
			username = user.Username
		}
	}
	if username == "" {
		return false, "", ""
	}
	return true, userID, username
}
