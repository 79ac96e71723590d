package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	spec := Document("Test Market Signup API", "1.0.0")

	require.NoError(t, spec.Validate(context.Background()))

	issue := spec.Paths.Find("/otp/issue")
	require.NotNil(t, issue)
	require.NotNil(t, issue.Post)
	assert.Equal(t, "issueChallenge", issue.Post.OperationID)

	verify := spec.Paths.Find("/otp/verify")
	require.NotNil(t, verify)
	require.NotNil(t, verify.Post)
	assert.Equal(t, "verifyChallenge", verify.Post.OperationID)
}

func TestRegister(t *testing.T) {
	e := echo.New()
	Register(e, Document("Test Market Signup API", "1.0.0"))

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
	})

	t.Run("yaml", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/otp/issue")
		assert.Contains(t, rec.Body.String(), "/otp/verify")
	})
}
