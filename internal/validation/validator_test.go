package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/validation"
)

type addItemRequest struct {
	MediaID int     `json:"mediaId" validate:"required,gt=0"`
	Kind    string  `json:"mediumKind" validate:"required,mediumkind"`
	Rating  float64 `json:"rating" validate:"rating"`
	Email   string  `json:"email,omitempty" validate:"omitempty,email"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(addItemRequest{MediaID: 100, Kind: "movie", Rating: 4.5})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       addItemRequest
		wantField string
	}{
		{"missing media id", addItemRequest{Kind: "movie", Rating: 3}, "mediaId"},
		{"unknown kind", addItemRequest{MediaID: 1, Kind: "book", Rating: 3}, "mediumKind"},
		{"zero rating", addItemRequest{MediaID: 1, Kind: "series", Rating: 0}, "rating"},
		{"rating above five", addItemRequest{MediaID: 1, Kind: "series", Rating: 5.5}, "rating"},
		{"rating off step", addItemRequest{MediaID: 1, Kind: "movie", Rating: 3.3}, "rating"},
		{"invalid email", addItemRequest{MediaID: 1, Kind: "movie", Rating: 3, Email: "nope"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}
