package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/brewlogapp/brewlog-server/internal/errors"
	"github.com/brewlogapp/brewlog-server/internal/store"
)

func TestJSON_WritesBareData(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]bool{"ok": true}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestError_Shape(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "bag not found", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"bag not found"}`, rec.Body.String())
}

func TestValidationFailed_Shape(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationFailed(rec, []apperrors.FieldIssue{
		{Field: "coffeeName", Message: "is required"},
		{Field: "dose", Message: "must be between 0 and 1000"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors []apperrors.FieldIssue `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "coffeeName", body.Errors[0].Field)
	assert.Equal(t, "is required", body.Errors[0].Message)
}

func TestHandleError(t *testing.T) {
	t.Run("domain validation error carries issues", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := apperrors.Validation([]apperrors.FieldIssue{{Field: "rating", Message: "must be between 0 and 5"}})
		HandleError(rec, err, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"errors"`)
		assert.Contains(t, rec.Body.String(), "must be between 0 and 5")
	})

	t.Run("domain not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, apperrors.NotFound("bag not found"), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"bag not found"}`, rec.Body.String())
	})

	t.Run("store error uses its code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, store.ErrNotFound, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown error is 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, assert.AnError, nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})
}
