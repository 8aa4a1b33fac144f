package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/sangkips/investify-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Errors  []apperror.FieldError `json:"errors"`
	Meta    Meta                  `json:"meta"`
}

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, envelope, *gin.Context) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env, c
}

func TestSuccessMeta(t *testing.T) {
	t.Parallel()

	w, env, _ := render(t, func(c *gin.Context) {
		c.Set(utils.ContextRequestID, "req-1")
		c.Set(utils.ContextOperatorName, "alice")
		Created(c, "Payment recorded", gin.H{"ok": true})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "req-1", env.Meta.RequestID)
	assert.Equal(t, "alice", env.Meta.Operator)
	assert.NotEmpty(t, env.Meta.Timestamp)
}

func TestErrorRendersCheckoutRejections(t *testing.T) {
	t.Parallel()

	var errs apperror.FieldErrors
	errs.Add("reference", "Transfer requires a reference")

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantMsg    string
		wantFields int
	}{
		{"validation", errs.Err(), http.StatusUnprocessableEntity, "Validation failed", 1},
		{"no method", apperror.ErrNoMethodSelected, http.StatusConflict, "No payment method selected", 0},
		{"over allocation", apperror.ErrOverAllocation, http.StatusConflict, "Amount exceeds the remaining balance", 0},
		{"invalid amount", apperror.ErrInvalidAmount, http.StatusBadRequest, "Amount must be greater than 0", 0},
		{"line not found", apperror.ErrLineNotFound, http.StatusNotFound, "Line not found", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env, _ := render(t, func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.wantCode, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.Len(t, env.Errors, tt.wantFields)
		})
	}
}

func TestErrorHidesInternalFailures(t *testing.T) {
	t.Parallel()

	w, env, c := render(t, func(c *gin.Context) { Error(c, errors.New("printer buffer corrupted")) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", env.Message)
	require.Len(t, c.Errors, 1)
	assert.EqualError(t, c.Errors[0].Err, "printer buffer corrupted")
}

func TestFailOmitsRequestIDWithoutLogger(t *testing.T) {
	t.Parallel()

	w, env, _ := render(t, func(c *gin.Context) { Forbidden(c, "Insufficient role privileges") })

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Success)
	assert.Empty(t, env.Meta.RequestID)
	assert.NotContains(t, w.Body.String(), `"data"`)
}
