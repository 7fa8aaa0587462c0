package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchEmpty(t *testing.T) {
	patch := NewPatch()

	assert.True(t, patch.Empty())
	assert.Empty(t, patch.Payload())
	assert.Empty(t, patch.Summary())
}

func TestPatchSingleEnabledField(t *testing.T) {
	patch := NewPatch().Enable("firstName", "Ana", "Lucía")

	require.False(t, patch.Empty())

	payload := patch.Payload()
	require.Len(t, payload, 1)
	assert.Equal(t, "Lucía", payload["firstName"])

	summary := patch.Summary()
	require.Len(t, summary, 1)
	assert.Equal(t, "Se cambiará el campo firstName de Ana a Lucía", summary[0])
}

func TestPatchMultipleFieldsKeepOrder(t *testing.T) {
	patch := NewPatch().
		Enable("rentAmount", "350", "375").
		Enable("includesWifi", false, true)

	payload := patch.Payload()
	assert.Len(t, payload, 2)
	assert.Equal(t, "375", payload["rentAmount"])
	assert.Equal(t, true, payload["includesWifi"])

	summary := patch.Summary()
	require.Len(t, summary, 2)
	assert.Equal(t, "Se cambiará el campo rentAmount de 350 a 375", summary[0])
	assert.Equal(t, "Se cambiará el campo includesWifi de false a true", summary[1])
}

func TestPatchReEnableOverwrites(t *testing.T) {
	patch := NewPatch().
		Enable("phone", "600123456", "600000000").
		Enable("phone", "600123456", "600999888")

	payload := patch.Payload()
	require.Len(t, payload, 1)
	assert.Equal(t, "600999888", payload["phone"])
	assert.Len(t, patch.Summary(), 1)
}
