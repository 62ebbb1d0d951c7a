package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shelfkeeper/shelfkeeper-server/internal/errors"
	"github.com/shelfkeeper/shelfkeeper-server/internal/validation"
)

type TestRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Authors  string `json:"authors" validate:"required,max=255"`
	Room     string `json:"room" validate:"required,max=100"`
	Language string `json:"language" validate:"required"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Title:    "Dune",
		Authors:  "F. Herbert",
		Room:     "Office",
		Language: "EN",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       TestRequest
		wantField string
	}{
		{
			name: "missing title",
			req: TestRequest{
				Authors:  "F. Herbert",
				Room:     "Office",
				Language: "EN",
			},
			wantField: "title",
		},
		{
			name: "missing language",
			req: TestRequest{
				Title:   "Dune",
				Authors: "F. Herbert",
				Room:    "Office",
			},
			wantField: "language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok, "details should be a field error map")
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(TestRequest{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)

	// JSON tag names, not Go field names.
	assert.Contains(t, details, "room")
	assert.NotContains(t, details, "Room")
}
