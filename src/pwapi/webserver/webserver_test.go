package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/config"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/datasource"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{AllowOrigins: []string{"http://localhost:3000"}}
	return New(cfg, datasource.NewFixtureSource("../datasource/testdata"))
}

func do(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestVoteRoutes(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, "/api/votes")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Objects []struct {
			Number int    `json:"number"`
			Result string `json:"result"`
		} `json:"objects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Objects, 2)

	w = do(t, r, "/api/votes/44-1/928")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passed")

	w = do(t, r, "/api/votes/44-1/55555")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, "/api/votes/44-1/not-a-number")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillRoutesSanitizeSummary(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, "/api/bills/44-1/C-45")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "This enactment amends things.")
	assert.NotContains(t, body, "script")

	w = do(t, r, "/api/bills/43-2/C-45")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemberRoutes(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, "/api/members")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, "/api/members/jane-doe")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Halifax")

	w = do(t, r, "/api/members/jane-doe/votes")
	require.Equal(t, http.StatusOK, w.Code)

	var ballots struct {
		Objects []struct {
			Ballot string `json:"ballot"`
		} `json:"objects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ballots))
	assert.Len(t, ballots.Objects, 2)

	w = do(t, r, "/api/members/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	r := testRouter(t)
	w := do(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}
