package cronjob

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	pkgcron "github.com/tracknest/core/internal/pkg/cron"
)

func newTestRouter(sched *pkgcron.Scheduler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	passthrough := func(c *gin.Context) { c.Next() }
	NewHandler(sched).RegisterRoutes(r.Group("/api/v1"), passthrough)
	return r
}

func TestCronJobEndpoints(t *testing.T) {
	done := make(chan struct{}, 1)
	sched := pkgcron.New()
	sched.Register(pkgcron.Job{
		Name:        "rollup_events",
		Description: "Fold raw events into hourly per-website summaries",
		Interval:    time.Hour,
		Fn: func(context.Context) error {
			done <- struct{}{}
			return nil
		},
	})
	r := newTestRouter(sched)

	t.Run("lists registered jobs", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cron", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data []pkgcron.ListItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		require.Equal(t, "rollup_events", body.Data[0].Name)
	})

	t.Run("triggers a job by name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cron/rollup_events/run", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("manually triggered job never ran")
		}
	})

	t.Run("reports job status", func(t *testing.T) {
		deadline := time.After(2 * time.Second)
		for {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cron/rollup_events", nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var res pkgcron.TaskResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			if res.Status == pkgcron.StatusFulfill {
				break
			}
			select {
			case <-deadline:
				t.Fatalf("job stuck in status %q", res.Status)
			default:
				time.Sleep(5 * time.Millisecond)
			}
		}
	})

	t.Run("unknown job is a 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cron/nope/run", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cron/nope", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
