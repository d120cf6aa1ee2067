package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facalloc/internal/app/models/dto"
	"github.com/yigit/facalloc/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"dataset not found", apperrors.ErrDatasetNotFound, http.StatusNotFound},
		{"run not found", apperrors.ErrRunNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", apperrors.ErrDatasetNotFound), http.StatusNotFound},
		{"conflict", apperrors.NewConflictError("dataset with this name already exists"), http.StatusConflict},
		{"dataset invalid", apperrors.ErrDatasetInvalid, http.StatusBadRequest},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"bad request", apperrors.NewBadRequestError("no file uploaded"), http.StatusBadRequest},
		{"unknown error", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	router := gin.New()
	router.POST("/rename", ValidateRequest(&dto.RenameDatasetRequest{}), func(c *gin.Context) {
		body, ok := c.Get("validatedBody")
		require.True(t, ok)
		req := body.(*dto.RenameDatasetRequest)
		c.JSON(http.StatusOK, gin.H{"name": req.Name})
	})

	t.Run("valid body passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rename", strings.NewReader(`{"name":"CSE intake"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "CSE intake")
	})

	t.Run("too-short name rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rename", strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VAL_001")
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rename", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
