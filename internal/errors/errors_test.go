package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Status(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewAPIError(ErrCodeNotFound, "").Status())
	assert.Equal(t, http.StatusTooManyRequests, NewAPIError(ErrCodeRateLimited, "").Status())
	assert.Equal(t, http.StatusInternalServerError, NewAPIError("SOMETHING_ELSE", "x").Status())
}

func TestNewAPIError_DefaultMessage(t *testing.T) {
	assert.Equal(t, "Access denied", NewAPIError(ErrCodeForbidden, "").Message)
	assert.Equal(t, "custom", NewAPIError(ErrCodeForbidden, "custom").Message)
}

func TestHelpers_AbortChain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reached := false
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		Conflict(c, "")
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, reached)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeConflict, body.Code)
	assert.Equal(t, "Resource conflict", body.Message)
}

func TestInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type request struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			InvalidBody(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(`{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInvalidInput, body.Code)
	assert.Equal(t, map[string]string{"email": "email", "name": "required"}, body.Details)

	w = send(`{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}
