package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "unitconv/pkg/domain-errors"
)

// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseConversionID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseConversionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseConversionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseConversionID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseConversionID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, ConversionID(valid), id)
		assert.False(t, id.IsNil())
	})
}

func TestConversionID_JSON(t *testing.T) {
	id := NewConversionID()
	b, err := json.Marshal(struct {
		ID ConversionID `json:"id"`
	}{id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+id.String()+`"}`, string(b))

	var back struct {
		ID ConversionID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, id, back.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"nope"}`), &back))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"length", KindLength},
		{" Distance ", KindLength},
		{"TIME", KindTime},
		{"duration", KindTime},
		{"weight", KindMass},
		{"velocity", KindSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, err := ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
			assert.True(t, k.IsValid())
		})
	}

	for _, bad := range []string{"", "  ", "temperature"} {
		_, err := ParseKind(bad)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), bad)
	}
	assert.False(t, Kind("volume").IsValid())
}
