package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/gestion-app/gestion_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(date, createdAt)
	gotDate, gotCreatedAt, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%%not-base64%%%"},
		{name: "missing separator", token: base64.StdEncoding.EncodeToString([]byte("2024-03-15T00:00:00Z"))},
		{name: "bad date", token: base64.StdEncoding.EncodeToString([]byte("not-a-date|2024-03-15T10:30:45Z"))},
		{name: "bad created_at", token: base64.StdEncoding.EncodeToString([]byte("2024-03-15T00:00:00Z|nope"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}
