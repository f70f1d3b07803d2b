package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/openapi"
	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/auth"
	"github.com/ak-shop/api/services/catalog"
	"github.com/ak-shop/api/services/collection"
	"github.com/ak-shop/api/services/jwt"
	"github.com/ak-shop/api/services/logs"
	"github.com/ak-shop/api/services/media"
	"github.com/ak-shop/api/services/oauth"
	"github.com/ak-shop/api/services/refreshtoken"
	"github.com/ak-shop/api/services/users"
	"github.com/ak-shop/api/testutils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testAPI is a fully wired server over an in-memory database.
type testAPI struct {
	srv *server.Server
	cfg *config.Config
	db  *gorm.DB
	jwt *jwt.Service
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := testutils.GetTestConfig()
	db := testutils.SetupFullTestDB(t)

	jwtSvc := jwt.NewService(cfg, nil)
	h := &Handlers{
		Auth: NewAuthHandler(cfg,
			auth.NewService(cfg, db, nil),
			oauth.NewService(cfg, db, nil),
			jwtSvc,
			refreshtoken.NewService(db, cfg, nil),
			nil),
		Products:    NewProductHandler(catalog.NewProductService(db, cfg, nil)),
		Categories:  NewCategoryHandler(catalog.NewCategoryService(db, cfg, nil)),
		Attributes:  NewAttributeHandler(catalog.NewAttributeService(db, cfg, nil)),
		Collections: NewCollectionHandler(collection.NewService(db, cfg, nil)),
		Media:       NewMediaHandler(media.NewService(db, cfg, nil, media.NewMemoryStorage())),
		Users:       NewUsersHandler(users.NewService(db, cfg, nil)),
		Logs:        NewLogsHandler(logs.NewService(db, cfg, nil)),
	}

	srv := server.New(cfg, nil, nil)
	RegisterRoutes(srv, h, jwtSvc, cfg, openapi.New("test", "0.0.0"))

	return &testAPI{srv: srv, cfg: cfg, db: db, jwt: jwtSvc}
}

type requestOpts struct {
	token   string
	cookies []*http.Cookie
}

func (a *testAPI) request(t *testing.T, method, path string, body any, opts requestOpts) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	for _, cookie := range opts.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.srv.Echo().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) server.Envelope {
	t.Helper()
	var env server.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func refreshCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
