package guard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/models"
	"vitrina/repository"
)

type fakeSessions struct {
	sessions map[string]*models.Session
	err      error
	calls    int
}

func (f *fakeSessions) GetSession(ctx context.Context, token string) (*models.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func newFake() *fakeSessions {
	return &fakeSessions{sessions: map[string]*models.Session{
		"tok": {Token: "tok", UserID: "u1", Email: "admin@tienda.co"},
	}}
}

func TestResolve(t *testing.T) {
	g := New(newFake())
	ctx := context.Background()

	cases := []struct {
		path     string
		token    string
		state    State
		location string
	}{
		{"/admin/productos", "", StateRedirected, LoginPath},
		{"/admin/productos", "tok", StateAllowed, ""},
		{"/admin", "", StateRedirected, LoginPath},
		{"/admin/catalogos/editar/7", "expired", StateRedirected, LoginPath},
		{"/", "", StateAllowed, ""},
		{"/c/verano", "", StateAllowed, ""},
		{"/login", "", StateAllowed, ""},
		{"/administracion", "", StateAllowed, ""},
	}

	for _, tc := range cases {
		t.Run(tc.path+"/"+tc.token, func(t *testing.T) {
			tr := g.Resolve(ctx, tc.path, tc.token)
			assert.Equal(t, tc.state, tr.State)
			assert.Equal(t, tc.location, tr.Location)
		})
	}
}

func TestResolveAttachesSession(t *testing.T) {
	g := New(newFake())

	tr := g.Resolve(context.Background(), "/admin/productos", "tok")

	require.NotNil(t, tr.Session)
	assert.Equal(t, "u1", tr.Session.UserID)
}

func TestLookupFailureCountsAsNoSession(t *testing.T) {
	f := newFake()
	f.err = errors.New("store unavailable")
	g := New(f)

	tr := g.Resolve(context.Background(), "/admin/productos", "tok")

	assert.Equal(t, StateRedirected, tr.State)
}

func TestPublicPathsSkipLookup(t *testing.T) {
	f := newFake()
	g := New(f)

	g.Resolve(context.Background(), "/categorias", "tok")

	assert.Zero(t, f.calls)
}

func newRouter(g *Guard, loader ConfigLoader) http.Handler {
	r := chi.NewRouter()
	r.Use(g.Middleware)
	r.Get("/login", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/admin/productos", func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(s.Email))
	})
	r.Group(func(r chi.Router) {
		r.Use(PublicLayout(loader))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	})
	return r
}

func TestMiddlewareRedirectsWithoutSession(t *testing.T) {
	srv := newRouter(New(newFake()), &fakeLoader{})

	req := httptest.NewRequest(http.MethodGet, "/admin/productos", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestMiddlewarePassesWithSession(t *testing.T) {
	srv := newRouter(New(newFake()), &fakeLoader{})

	req := httptest.NewRequest(http.MethodGet, "/admin/productos", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@tienda.co", rec.Body.String())
}

type fakeLoader struct {
	loaded  bool
	fetches int
	err     error
}

func (f *fakeLoader) Loaded() bool { return f.loaded }

func (f *fakeLoader) Fetch(ctx context.Context) error {
	f.fetches++
	if f.err != nil {
		return f.err
	}
	f.loaded = true
	return nil
}

func TestPublicLayoutLoadsConfigOnce(t *testing.T) {
	loader := &fakeLoader{}
	srv := newRouter(New(newFake()), loader)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, loader.fetches)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, 1, loader.fetches, "standalone routes do not load the config")
}

func TestPublicLayoutProceedsWhenLoadFails(t *testing.T) {
	loader := &fakeLoader{err: errors.New("down")}
	srv := newRouter(New(newFake()), loader)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, loader.fetches)
}
