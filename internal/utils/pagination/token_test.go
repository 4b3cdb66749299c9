package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	// A typical cursor: the journal date is a plain day, created_at carries
	// sub-second precision that must survive as the tie-breaker.
	journalDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 14, 9, 21, 7, 482193000, time.UTC)

	token := EncodeToken(journalDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, journalDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestTokenRoundTripZeroTimes(t *testing.T) {
	token := EncodeToken(time.Time{}, time.Time{})

	gotDate, gotCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.IsZero())
	assert.True(t, gotCreatedAt.IsZero())
}

func TestDecodeTokenMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%% definitely not base64 %%%"},
		{"no separator", base64.URLEncoding.EncodeToString([]byte("2026-03-14T00:00:00Z"))},
		{"bad journal date", base64.URLEncoding.EncodeToString([]byte("yesterday|2026-03-14T09:21:07Z"))},
		{"bad created_at", base64.URLEncoding.EncodeToString([]byte("2026-03-14T00:00:00Z|later"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
