package app

import (
	"testing"

	"renthub/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFromInvalidation(t *testing.T) {
	userID := uuid.New()

	t.Run("rebuilds id and email", func(t *testing.T) {
		user := userFromInvalidation(events.Event{
			Type:   events.USER_INVALIDATED,
			UserID: &userID,
			Data:   map[string]any{"email": "ana@example.com"},
		})

		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "ana@example.com", user.Email)
	})

	t.Run("missing email still yields the id", func(t *testing.T) {
		user := userFromInvalidation(events.Event{
			Type:   events.USER_INVALIDATED,
			UserID: &userID,
		})

		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Empty(t, user.Email)
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		assert.Nil(t, userFromInvalidation(events.Event{
			Type:   events.PAYMENT_REVIEWED,
			UserID: &userID,
		}))
	})

	t.Run("missing user id is ignored", func(t *testing.T) {
		assert.Nil(t, userFromInvalidation(events.Event{
			Type: events.USER_INVALIDATED,
		}))
	})
}

func TestEventEntityID(t *testing.T) {
	paymentID := uuid.New()

	id, err := eventEntityID(events.Event{
		Data: map[string]any{"paymentId": paymentID.String()},
	}, "paymentId")
	require.NoError(t, err)
	assert.Equal(t, paymentID, id)

	_, err = eventEntityID(events.Event{Data: map[string]any{}}, "paymentId")
	assert.Error(t, err)
}
