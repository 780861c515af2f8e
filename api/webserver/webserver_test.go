package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WebserverTestSuite struct {
	suite.Suite
	publicDir string
	router    http.Handler
}

func TestWebserverTestSuite(t *testing.T) {
	suite.Run(t, new(WebserverTestSuite))
}

func (s *WebserverTestSuite) SetupTest() {
	s.publicDir = s.T().TempDir()

	cfg := config.NewDefaultMainConfig()
	cfg.Deployments.PublicDir = s.publicDir
	cfg.RateLimit.Enabled = false
	config.Set(&cfg)

	s.router = buildRoutes()
}

func (s *WebserverTestSuite) write(rel string, content string) {
	p := filepath.Join(s.publicDir, filepath.FromSlash(rel))
	s.Require().NoError(os.MkdirAll(filepath.Dir(p), 0755))
	s.Require().NoError(os.WriteFile(p, []byte(content), 0644))
}

func (s *WebserverTestSuite) get(target string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	return w
}

func (s *WebserverTestSuite) TestListDeploymentsWithoutRoot() {
	w := s.get("http://omk.test/omk/api/deployments")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))
	s.Equal("no-store", w.Header().Get("Cache-Control"))
	s.JSONEq("[]", w.Body.String())
}

func (s *WebserverTestSuite) TestListDeployments() {
	s.write("deployments/b/manifest.json", "{}")
	s.write("deployments/b/roads.osm", "<osm/>")
	s.write("deployments/a/notes.txt", "hello")
	s.write("deployments/stray.osm", "<osm/>")

	for _, target := range []string{"http://omk.test/omk/api/deployments", "http://omk.test/omk/api/deployments/"} {
		w := s.get(target)
		s.Require().Equal(http.StatusOK, w.Code, target)

		var body []map[string]interface{}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Require().Len(body, 2)
		s.Equal("a", body[0]["name"])
		s.Equal(false, body[0]["valid"])
		s.Equal("Unable to find manifest file.", body[0]["message"])
		s.NotContains(body[0], "files")

		s.Equal("b", body[1]["name"])
		s.Equal(true, body[1]["valid"])
		s.Equal("http://omk.test/omk/api/deployments/b", body[1]["url"])
		s.Equal("http://omk.test/omk/data/deployments/b", body[1]["listingUrl"])
		files := body[1]["files"].(map[string]interface{})
		s.Len(files["osm"], 1)
		s.Len(files["mbtiles"], 0)
	}
}

func (s *WebserverTestSuite) TestGetDeployment() {
	s.write("deployments/survey/manifest.json", "{}")
	s.write("deployments/survey/tiles.mbtiles", "SQLite format 3")

	w := s.get("http://omk.test/omk/api/deployments/survey")
	s.Require().Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("survey", body["name"])
	file := body["files"].(map[string]interface{})["mbtiles"].([]interface{})[0].(map[string]interface{})
	s.Equal("tiles.mbtiles", file["name"])
	s.Equal("http://omk.test/omk/data/deployments/survey/tiles.mbtiles", file["downloadUrl"])
	s.Equal(float64(len("SQLite format 3")), file["size"])
	s.Contains(file, "last_modified")
}

func (s *WebserverTestSuite) TestGetMissingDeployment() {
	w := s.get("http://omk.test/omk/api/deployments/missing")
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"errcode":"M_NOT_FOUND","error":"Not found","mr_errcode":"M_NOT_FOUND"}`, w.Body.String())
}

func (s *WebserverTestSuite) TestGetDeploymentRejectsBackslash() {
	s.write("deployments/x/manifest.json", "{}")

	w := s.get("http://omk.test/omk/api/deployments/a%5Cb")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *WebserverTestSuite) TestPublicFile() {
	s.write("deployments/survey/roads.osm", "<osm version=\"0.6\"></osm>")

	w := s.get("http://omk.test/omk/data/deployments/survey/roads.osm")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("application/vnd.openstreetmap.data+xml", w.Header().Get("Content-Type"))
	s.Equal("attachment; filename=roads.osm", w.Header().Get("Content-Disposition"))
	s.Equal("<osm version=\"0.6\"></osm>", w.Body.String())
}

func (s *WebserverTestSuite) TestPublicListing() {
	s.write("deployments/survey/roads.osm", "<osm/>")
	s.write("deployments/survey/tiles/0.png", "png")

	w := s.get("http://omk.test/omk/data/deployments/survey")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("text/html; charset=UTF-8", w.Header().Get("Content-Type"))
	s.Contains(w.Body.String(), "/omk/data/deployments/survey/roads.osm")
	s.Contains(w.Body.String(), "tiles/")
	s.Contains(w.Body.String(), `href="/omk/data/deployments/"`)

	w = s.get("http://omk.test/omk/data")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Index of /")
}

func (s *WebserverTestSuite) TestPublicFileCannotEscape() {
	outside := filepath.Join(filepath.Dir(s.publicDir), "secret.txt")
	s.Require().NoError(os.WriteFile(outside, []byte("secret"), 0644))
	defer os.Remove(outside)

	r := httptest.NewRequest("GET", "http://omk.test/omk/data/x", nil)
	r.URL.Path = "/omk/data/../secret.txt"
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	s.NotEqual(http.StatusOK, w.Code)
	s.NotEqual("secret", w.Body.String())
}

func (s *WebserverTestSuite) TestPublicFileMissing() {
	w := s.get("http://omk.test/omk/data/deployments/nope.osm")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *WebserverTestSuite) TestNotFoundAndMethodNotAllowed() {
	w := s.get("http://omk.test/somewhere/else")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))

	r := httptest.NewRequest("POST", "http://omk.test/omk/api/deployments", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	s.Equal(http.StatusMethodNotAllowed, w.Code)
	s.JSONEq(`{"errcode":"M_UNKNOWN","error":"Method Not Allowed","mr_errcode":"M_METHOD_NOT_ALLOWED"}`, w.Body.String())
}

func (s *WebserverTestSuite) TestOptions() {
	r := httptest.NewRequest("OPTIONS", "http://omk.test/omk/api/deployments", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	s.JSONEq("{}", w.Body.String())
}

func (s *WebserverTestSuite) TestHealthzAndVersion() {
	w := s.get("http://omk.test/healthz")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok":true,"status":"Probably not dead"}`, w.Body.String())

	w = s.get("http://omk.test/omk/api/version")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "GitCommit")
}

func (s *WebserverTestSuite) TestCustomPrefixes() {
	cfg := config.NewDefaultMainConfig()
	cfg.Deployments.PublicDir = s.publicDir
	cfg.Urls.ApiPrefix = "/api/v2/"
	cfg.Urls.PublicBaseUrl = "https://maps.example.org"
	config.Set(&cfg)
	router := buildRoutes()

	s.write("deployments/x/manifest.json", "{}")
	r := httptest.NewRequest("GET", "http://127.0.0.1/api/v2/deployments/x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"url":"https://maps.example.org/api/v2/deployments/x"`)
}

func TestHandlerRecoversPanics(t *testing.T) {
	cfg := config.NewDefaultMainConfig()
	config.Set(&cfg)

	h := handler{func(r *http.Request, rctx rcontext.RequestContext) interface{} {
		panic("boom")
	}, "panic", &requestCounter{}}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"errcode":"M_UNKNOWN","error":"unexpected error","mr_errcode":"M_UNKNOWN"}`, w.Body.String())
}

func TestRequestCounter(t *testing.T) {
	c := &requestCounter{}
	require.Equal(t, "REQ-0", c.GetNextId())
	require.Equal(t, "REQ-1", c.GetNextId())
}
