package apierror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
	"github.com/MrJamesThe3rd/spycats/internal/http/apierror"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("cat 1: %w", agency.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("%w: name", agency.ErrValidation), want: http.StatusUnprocessableEntity},
		{err: agency.ErrInvalidBreed, want: http.StatusBadRequest},
		{err: apierror.ErrBadRequest, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: busy", agency.ErrConflict), want: http.StatusConflict},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, apierror.StatusFor(tt.err))
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	apierror.Error(rec, req, fmt.Errorf("creating cat: %w: %w", agency.ErrInternal, errors.New("password=hunter2")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["detail"])
}

type payload struct {
	Name  string `json:"name" validate:"notblank,max=5"`
	Years *int   `json:"years" validate:"required,min=0,max=50"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		detail  string
	}{
		{name: "Valid", body: `{"name": "Tom", "years": 3}`},
		{name: "Malformed", body: `{"name":`, wantErr: apierror.ErrBadRequest},
		{name: "WrongType", body: `{"name": "Tom", "years": "three"}`, wantErr: agency.ErrValidation, detail: "years"},
		{name: "Missing", body: `{"name": "Tom"}`, wantErr: agency.ErrValidation, detail: "years is required"},
		{name: "Blank", body: `{"name": "  ", "years": 1}`, wantErr: agency.ErrValidation, detail: "name must not be blank"},
		{name: "TooLong", body: `{"name": "Tommy Lee", "years": 1}`, wantErr: agency.ErrValidation, detail: "name must be at most 5"},
		{name: "OutOfRange", body: `{"name": "Tom", "years": 51}`, wantErr: agency.ErrValidation, detail: "years must be at most 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload

			err := apierror.Decode(req, &p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}
