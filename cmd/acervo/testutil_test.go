package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// portalServer is a fluent builder for a fake portal API. Routes use
// net/http patterns such as "GET /api/books".
type portalServer struct {
	t   *testing.T
	mux *http.ServeMux
}

func newPortalServer(t *testing.T) *portalServer {
	t.Helper()
	return &portalServer{t: t, mux: http.NewServeMux()}
}

func (p *portalServer) Route(pattern string, h http.HandlerFunc) *portalServer {
	p.mux.HandleFunc(pattern, h)
	return p
}

func (p *portalServer) JSON(pattern, body string) *portalServer {
	return p.Route(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})
}

func (p *portalServer) Status(pattern string, code int) *portalServer {
	return p.Route(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	})
}

// Forbid fails the test if pattern is requested.
func (p *portalServer) Forbid(pattern string) *portalServer {
	return p.Route(pattern, func(w http.ResponseWriter, r *http.Request) {
		p.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})
}

func (p *portalServer) Build() *httptest.Server {
	p.t.Helper()
	srv := httptest.NewServer(p.mux)
	p.t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": userID}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// writeTestConfig writes a config pointing at url with its cache under a
// temp dir, and returns the config path.
func writeTestConfig(t *testing.T, url, token string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "acervo.toml")
	content := fmt.Sprintf(`[portal]
url = %q
token = %q
timeout = "2s"

[cache]
path = %q
`, url, token, filepath.Join(dir, "cache.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// runCLI executes a fresh command tree and returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const studentJSON = `{"id":"s1","nome":"Ana","sobrenome":"Lima","idade":12,"tipo":"Aluno"}`

const teacherJSON = `{"id":"p1","nome":"Carlos","sobrenome":"Souza","idade":45,"tipo":"Professor"}`

const booksJSON = `[
	{"id":"b1","title":"Dom Casmurro","author":"Machado de Assis","genres":"Romance,Ficção","ageRating":"Livre"},
	{"id":"b2","title":"A Ilha Perdida","author":"Maria José Dupré","genres":["Aventura"],"ageRating":"10+"},
	{"id":"b3","title":"Drácula","author":"Bram Stoker","genres":"Mistério","ageRating":"16+"}
]`

const videosJSON = `[
	{"id":"v1","title":"Fotossíntese","genres":["Didático"],"ageRating":"Livre","likes":["s1","s2"],"videoUrl":"https://v/1"},
	{"id":"v2","title":"Curta de Animação","genres":"Filmes","ageRating":"Livre","likes":[]},
	{"id":"v3","title":"Filme de Terror","genres":"Filmes","ageRating":"18+"}
]`
