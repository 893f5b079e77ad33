package event

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestWriteTrackError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unregistered website is a 403 with the documented reason", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		writeTrackError(c, errUnregisteredWebsite)

		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "Unregistered website/domain")
	})

	t.Run("anything else is a 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		writeTrackError(c, errors.New("connection refused"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
