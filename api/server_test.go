package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trekmark/trekmark-api/api/mocks"
	"github.com/trekmark/trekmark-api/schema"
	"github.com/trekmark/trekmark-api/store"
)

// testStore bundles the gomock store with fake resource collections so
// tests can hook individual CRUD calls.
type testStore struct {
	mock    *mocks.MockMongoStore
	tours   *fakeCollection[schema.Tour]
	users   *fakeCollection[schema.User]
	reviews *fakeCollection[schema.Review]
}

func newTestServer(t *testing.T) (*Server, *testStore, *gin.Engine) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ts := &testStore{
		mock:    mocks.NewMockMongoStore(ctrl),
		tours:   &fakeCollection[schema.Tour]{},
		users:   &fakeCollection[schema.User]{},
		reviews: &fakeCollection[schema.Review]{},
	}
	ts.mock.EXPECT().TourResource().Return(ts.tours).AnyTimes()
	ts.mock.EXPECT().UserResource().Return(ts.users).AnyTimes()
	ts.mock.EXPECT().ReviewResource().Return(ts.reviews).AnyTimes()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	viper.Set("jwt.expire", 72)

	s := NewServer(ts.mock, nil, key)
	return s, ts, s.setupRouter()
}

// loginAs registers a user with the fake store and returns a bearer
// header for it.
func loginAs(t *testing.T, s *Server, ts *testStore, role string) (*schema.User, string) {
	t.Helper()

	user := &schema.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test User",
		Email: "user@example.com",
		Role:  role,
	}
	ts.users.getFn = func(_ context.Context, id primitive.ObjectID) (*schema.User, error) {
		if id != user.ID {
			return nil, store.ErrNotFound
		}
		return user, nil
	}

	token, err := s.issueToken(user)
	require.NoError(t, err)
	return user, "Bearer " + token
}

func performAs(r *gin.Engine, method, target, auth string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := newJSONRequest(method, target, body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	r.ServeHTTP(w, req)
	return w
}

func newJSONRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthz(t *testing.T) {
	_, ts, r := newTestServer(t)
	ts.mock.EXPECT().Ping().Return(nil)

	w := performAs(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", decodeBody(t, w)["status"])
}

func TestAuthRequired(t *testing.T) {
	_, _, r := newTestServer(t)

	w := performAs(r, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, errNotLoggedIn.Error(), body["message"])
}

func TestAuthExpiredToken(t *testing.T) {
	s, ts, r := newTestServer(t)

	viper.Set("jwt.expire", -1)
	defer viper.Set("jwt.expire", 72)
	_, auth := loginAs(t, s, ts, schema.RoleUser)

	w := performAs(r, http.MethodGet, "/api/v1/users/me", auth, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errTokenExpired.Error(), decodeBody(t, w)["message"])
}

func TestAuthUserGone(t *testing.T) {
	s, ts, r := newTestServer(t)

	_, auth := loginAs(t, s, ts, schema.RoleUser)
	ts.users.getFn = func(context.Context, primitive.ObjectID) (*schema.User, error) {
		return nil, store.ErrNotFound
	}

	w := performAs(r, http.MethodGet, "/api/v1/users/me", auth, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errTokenUserGone.Error(), decodeBody(t, w)["message"])
}

func TestAuthGarbageToken(t *testing.T) {
	_, _, r := newTestServer(t)

	w := performAs(r, http.MethodGet, "/api/v1/users/me", "Bearer not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	s, ts, r := newTestServer(t)
	user, auth := loginAs(t, s, ts, schema.RoleUser)

	w := performAs(r, http.MethodGet, "/api/v1/users/me", auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	me := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, user.ID.Hex(), me["id"])
	assert.NotContains(t, me, "password")
}

func TestUsersAdminOnly(t *testing.T) {
	s, ts, r := newTestServer(t)
	_, auth := loginAs(t, s, ts, schema.RoleUser)

	w := performAs(r, http.MethodGet, "/api/v1/users", auth, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, errForbidden.Error(), decodeBody(t, w)["message"])
}
