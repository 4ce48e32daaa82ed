package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bukuinduk/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		status      int
		code        string
		description string
	}{
		{
			name:        "student missing",
			err:         dErrors.New(dErrors.CodeNotFound, "student not found"),
			status:      http.StatusNotFound,
			code:        "not_found",
			description: "student not found",
		},
		{
			name:        "unknown category",
			err:         dErrors.New(dErrors.CodeInvalidArgument, "unknown category: sports"),
			status:      http.StatusBadRequest,
			code:        "invalid_argument",
			description: "unknown category: sports",
		},
		{
			name:        "wrapped domain error keeps its code",
			err:         fmt.Errorf("generate: %w", dErrors.New(dErrors.CodeCancelled, "registry aggregation cancelled")),
			status:      http.StatusRequestTimeout,
			code:        "cancelled",
			description: "registry aggregation cancelled",
		},
		{
			name:   "internal hides description",
			err:    dErrors.New(dErrors.CodeInternal, "pdf output failed"),
			status: http.StatusInternalServerError,
			code:   "internal_error",
		},
		{
			name:   "uncoded error is internal",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "internal_error",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)

			require.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.code, body["error"])
			desc, ok := body["error_description"]
			assert.Equal(t, tc.description != "", ok)
			assert.Equal(t, tc.description, desc)
		})
	}
}

func TestStatusFor(t *testing.T) {
	for code, want := range map[dErrors.Code]int{
		dErrors.CodeBadRequest:            http.StatusBadRequest,
		dErrors.CodeUnauthorized:          http.StatusUnauthorized,
		dErrors.CodeDomainFetchFailed:     http.StatusBadGateway,
		dErrors.CodeSignatureDecodeFailed: http.StatusUnprocessableEntity,
		dErrors.Code("unmapped"):          http.StatusInternalServerError,
	} {
		assert.Equal(t, want, StatusFor(code), string(code))
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusAccepted, map[string]int{"pages": 6})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"pages":6}`, w.Body.String())
}
