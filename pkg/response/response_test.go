package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Body) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessEnvelope(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Success(c, gin.H{"inserted": 3})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "success", body.Message)
	require.NotNil(t, body.Data)
}

func TestBadRequestCarriesConstraint(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		BadRequest(c, "mergegaps must be non-negative")
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, "mergegaps must be non-negative", body.Message)
	assert.Nil(t, body.Data)
}

func TestInternalError(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		InternalError(c, "Failed to process availability request")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusInternalServerError, body.Code)
}
