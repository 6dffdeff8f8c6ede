package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/api/middleware"
	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/service"
	"github.com/foodshare/platform/internal/core/session"
	"github.com/foodshare/platform/internal/infrastructure/db/memory"
	"github.com/foodshare/platform/internal/pkg/latency"
)

const cookieName = "foodshare_session"

type testApp struct {
	e     *echo.Echo
	cache *memory.SessionCache
	codec *middleware.TokenCodec
	cat   *catalog.Catalog
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cache := memory.NewSessionCache()
	guard := memory.NewSubmissionGuard()
	auth := service.NewAuthService(memory.NewAccountRepository(), service.AuthOptions{Mode: service.AuthModeMock})
	cat := catalog.New()
	codec := middleware.NewTokenCodec("test-secret", time.Hour)

	e := NewRouter(Deps{
		Log:   zerolog.Nop(),
		Store: session.NewStore(cache, guard, zerolog.Nop()),
		Gate:  session.NewGate(auth, cache, guard, zerolog.Nop(), session.WithWait(latency.None)),
		Donations: service.NewDonationService(cat, guard, nil, service.DonationOptions{
			Wait: latency.None,
		}, zerolog.Nop()),
		Catalog: cat,
		Codec:   codec,
		Cookie:  middleware.SessionOptions{CookieName: cookieName, TTL: time.Hour},
	})
	return &testApp{e: e, cache: cache, codec: codec, cat: cat}
}

// signIn stores p in a fresh slot and returns a token naming it.
func (a *testApp) signIn(t *testing.T, sid string, p *domain.Principal) string {
	t.Helper()
	if p != nil {
		if err := a.cache.Save(context.Background(), sid, p); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	token, err := a.codec.Issue(sid)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (a *testApp) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

var (
	donor = &domain.Principal{ID: "d1", Email: "donor@example.com", Name: "Dana", Role: domain.RoleDonor}
	ngo   = &domain.Principal{ID: "n1", Email: "ngo@example.com", Name: "Nia", Role: domain.RoleNGO, Organization: "Food Bank"}
	admin = &domain.Principal{ID: "a1", Email: "admin@example.com", Name: "Ada", Role: domain.RoleAdmin}
)

func TestRouter_NavigationGuard(t *testing.T) {
	tests := []struct {
		name         string
		principal    *domain.Principal
		path         string
		wantCode     int
		wantLocation string
		wantBody     string
	}{
		{"ngo cannot post food", ngo, "/post-food", http.StatusFound, "/login", ""},
		{"donor can post food", donor, "/post-food", http.StatusOK, "", "Post Surplus Food"},
		{"anonymous cannot post food", nil, "/post-food", http.StatusFound, "/login", ""},
		{"anonymous dashboard goes to login", nil, "/dashboard", http.StatusFound, "/login", ""},
		{"ngo sees ngo dashboard", ngo, "/dashboard", http.StatusOK, "", "Available Food Nearby"},
		{"donor sees donor dashboard", donor, "/dashboard", http.StatusOK, "", "Recent Donations"},
		{"admin sees admin dashboard", admin, "/dashboard", http.StatusOK, "", "Admin Dashboard"},
		{"admin cannot browse food", admin, "/browse-food", http.StatusFound, "/login", ""},
		{"ngo can browse food", ngo, "/browse-food", http.StatusOK, "", "Browse Available Food"},
		{"signed in user skips login", donor, "/login", http.StatusFound, "/dashboard", ""},
		{"signed in user skips register", ngo, "/register", http.StatusFound, "/dashboard", ""},
		{"anonymous sees login", nil, "/login", http.StatusOK, "", "Welcome Back"},
		{"anonymous sees landing", nil, "/", http.StatusOK, "", "Share Food, Share Hope"},
		{"anonymous profile goes to login", nil, "/profile", http.StatusFound, "/login", ""},
		{"admin sees profile", admin, "/profile", http.StatusOK, "", "Ada"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			token := app.signIn(t, "sid-"+tc.name, tc.principal)

			rec := app.do(httptest.NewRequest(http.MethodGet, tc.path, nil), token)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderLocation); got != tc.wantLocation {
				t.Fatalf("expected location %q, got %q", tc.wantLocation, got)
			}
			if tc.wantBody != "" && !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Fatalf("expected body to contain %q", tc.wantBody)
			}
		})
	}
}

func TestRouter_CorruptRoleDashboardGoesToLanding(t *testing.T) {
	app := newTestApp(t)
	app.cache.Put("sid", []byte(`{"id":"x","email":"x@example.com","name":"X","role":"superuser"}`))
	token := app.signIn(t, "sid", nil)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), token)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected 302 to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRouter_LoginLogoutRoundTrip(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(postForm("/login", url.Values{
		"email":    {"dana@example.com"},
		"password": {"secret"},
		"role":     {"donor"},
	}), "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected 303 to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	var token string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookieName {
			token = ck.Value
		}
	}
	if token == "" {
		t.Fatalf("expected session cookie to be issued")
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), token)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Recent Donations") {
		t.Fatalf("expected donor dashboard after login, got %d", rec.Code)
	}

	rec = app.do(postForm("/logout", nil), token)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), token)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 to /login after logout, got %d", rec.Code)
	}
}

func TestRouter_LoginValidationRerendersForm(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(postForm("/login", url.Values{"email": {"not-an-email"}, "role": {"donor"}}), "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Welcome Back") {
		t.Fatalf("expected login form to be rendered again")
	}
}

func TestRouter_RegisterDuplicateIsConflict(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{
		"name":     {"Nia"},
		"email":    {"nia@example.com"},
		"password": {"secret"},
		"role":     {"ngo"},
	}

	if rec := app.do(postForm("/register", form), ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	rec := app.do(postForm("/register", form), "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Fatalf("expected duplicate message in form")
	}
}

func TestRouter_LoginWithWrongRoleIsRejected(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{
		"name":     {"Dana"},
		"email":    {"dana@example.com"},
		"password": {"secret"},
		"role":     {"donor"},
	}
	if rec := app.do(postForm("/register", form), ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	rec := app.do(postForm("/login", url.Values{
		"email":    {"dana@example.com"},
		"password": {"secret"},
		"role":     {"ngo"},
	}), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Welcome Back") || !strings.Contains(body, "Invalid email, password or role.") {
		t.Fatalf("expected login form with credentials message")
	}

	var token string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookieName {
			token = ck.Value
		}
	}
	rec = app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), token)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("rejected login must leave the client signed out, got %d", rec.Code)
	}
}

func TestRouter_PostFood(t *testing.T) {
	app := newTestApp(t)
	token := app.signIn(t, "sid", donor)

	rec := app.do(postForm("/post-food", url.Values{
		"food_type":      {"Vegetable Biryani"},
		"category":       {"cooked"},
		"quantity":       {"20"},
		"unit":           {"portions"},
		"expiry_date":    {"2030-01-01"},
		"expiry_time":    {"18:00"},
		"pickup_address": {"12 Main St"},
		"contact_phone":  {"555-0100"},
		"vegetarian":     {"true"},
	}), token)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); !strings.HasPrefix(loc, "/dashboard?flash=") {
		t.Fatalf("expected redirect to dashboard with flash, got %q", loc)
	}
}

func TestRouter_PostFoodMissingFields(t *testing.T) {
	app := newTestApp(t)
	token := app.signIn(t, "sid", donor)

	rec := app.do(postForm("/post-food", url.Values{"food_type": {"Bread"}}), token)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestRouter_ClaimListing(t *testing.T) {
	app := newTestApp(t)
	listing := app.cat.Listings()[0]

	rec := app.do(postForm("/browse-food/"+listing.ID+"/claim", nil), app.signIn(t, "ngo", ngo))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); !strings.HasPrefix(loc, "/browse-food?flash=") {
		t.Fatalf("expected redirect to browse with flash, got %q", loc)
	}

	rec = app.do(postForm("/browse-food/"+listing.ID+"/claim", nil), app.signIn(t, "donor", donor))
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected donor claim to be redirected to /login, got %d", rec.Code)
	}

	rec = app.do(postForm("/browse-food/missing/claim", nil), app.signIn(t, "ngo2", ngo))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown listing, got %d", rec.Code)
	}
}

func TestRouter_SessionAPI(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/session/login",
		strings.NewReader(`{"email":"nia@example.com","password":"secret","role":"ngo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string            `json:"token"`
		User  *domain.Principal `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if login.Token == "" || login.User == nil || login.User.Role != domain.RoleNGO {
		t.Fatalf("unexpected login response: %+v", login)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+login.Token)
	rec = app.do(req, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "nia@example.com") {
		t.Fatalf("expected current user, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+login.Token)
	rec = app.do(req, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listings, got %d", rec.Code)
	}
	var listings struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listings.Count != len(app.cat.Listings()) {
		t.Fatalf("expected %d listings, got %d", len(app.cat.Listings()), listings.Count)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/session/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+login.Token)
	if rec = app.do(req, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRouter_ListingsAPIRequiresNGO(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/listings", nil), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected JSON error envelope, got %s", rec.Body.String())
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/api/listings", nil), app.signIn(t, "sid", donor))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_SessionAPIValidation(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/session/login", strings.NewReader(`{"email":"a@b.co","password":"x","role":"chef"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_UnknownPageRendersHTMLError(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/nowhere", nil), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextHTML) {
		t.Fatalf("expected HTML error page, got %q", ct)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec := app.do(httptest.NewRequest(http.MethodGet, path, nil), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
