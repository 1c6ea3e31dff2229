package cache

import (
	"encoding/json"
	"testing"

	"edcall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPayload_KeepsPasswordHash(t *testing.T) {
	user := models.User{
		Email:    "asha@example.com",
		Password: "$2a$10$fakehash",
	}
	user.ID = 1

	// The API shape must never carry the hash.
	plain, err := json.Marshal(&user)
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "$2a$10$fakehash")

	// The cached shape must, or a login served from cache would fail.
	payload := userPayload{User: user, Password: user.Password}
	data, err := json.Marshal(&payload)
	require.NoError(t, err)

	var restored userPayload
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, "$2a$10$fakehash", restored.Password)
	assert.Equal(t, "asha@example.com", restored.User.Email)
}
