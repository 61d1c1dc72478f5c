package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-storefront/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleSession(id string) *Session {
	p := models.Product{
		ID:        primitive.NewObjectID(),
		Title:     "Queen Bed Frame",
		Price:     decimal.RequireFromString("499.99"),
		SalePrice: decimal.NewNullDecimal(decimal.RequireFromString("349.99")),
	}
	s := &Session{
		ID:   id,
		User: &models.SessionIdentity{ID: "u1", FirstName: "Ana", Email: "ana@example.com", Role: models.RoleCustomer},
	}
	s.CartOrNew().Add(p)
	return s
}

func assertSameSession(t *testing.T, want, got *Session) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.User, got.User)
	require.Len(t, got.Cart.Lines, 1)
	assert.Equal(t, want.Cart.Lines[0].Product.ID, got.Cart.Lines[0].Product.ID)
	assert.True(t, got.Cart.Totals().GrandTotal.Equal(want.Cart.Totals().GrandTotal))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	s := sampleSession("abc")
	require.NoError(t, store.Save(ctx, s, time.Minute))

	got, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assertSameSession(t, s, got)

	// loaded copies are independent
	got.Cart.Clear()
	again, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, again.Cart.Lines, 1)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "")

	s := sampleSession("xyz")
	require.NoError(t, store.Save(ctx, s, time.Hour))
	assert.True(t, mr.Exists("session:xyz"))

	got, err := store.Load(ctx, "xyz")
	require.NoError(t, err)
	assertSameSession(t, s, got)

	require.NoError(t, store.Delete(ctx, "xyz"))
	_, err = store.Load(ctx, "xyz")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, s, time.Minute))
	mr.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, "xyz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerCookieCycle(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, []byte("secret"), time.Hour, false)

	var seen *Session
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		if r.URL.Path == "/login" {
			seen.User = &models.SessionIdentity{ID: "u1", FirstName: "Ana", Role: models.RoleCustomer}
			require.NoError(t, m.Renew(w, r, seen))
		}
		if r.URL.Path == "/logout" {
			require.NoError(t, m.Destroy(w, r, seen))
		}
	}))

	// no cookie: empty, unsaved session
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, seen.User)
	assert.Empty(t, rec.Result().Cookies())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen.User)
	assert.Equal(t, "Ana", seen.User.FirstName)
	id := seen.ID

	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
	_, err := store.Load(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	// a forged cookie is ignored
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, seen.User)
}
