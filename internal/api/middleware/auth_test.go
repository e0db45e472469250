package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadflow/academy-api/internal/domain"
)

type fakeAuthenticator struct {
	identities map[string]domain.Identity
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	identity, ok := f.identities[token]
	if !ok {
		return domain.Identity{}, errors.New("invalid or expired token")
	}

	return identity, nil
}

func newAuthTestRouter(auth SessionAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Authenticate(auth), func(ctx *gin.Context) {
		value, _ := ctx.Get(IdentityKey)
		identity := value.(domain.Identity)
		ctx.JSON(http.StatusOK, gin.H{"user_id": identity.UserID})
	})

	return router
}

func TestAuthenticate(t *testing.T) {
	auth := &fakeAuthenticator{identities: map[string]domain.Identity{
		"good-token": {UserID: "user-1", Role: domain.RoleAdmin, Token: "good-token"},
	}}
	router := newAuthTestRouter(auth)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"bearer token", "Bearer good-token", http.StatusOK},
		{"lowercase bearer", "bearer good-token", http.StatusOK},
		{"raw token", "good-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer bad-token", http.StatusUnauthorized},
		{"bearer with no token", "Bearer ", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthenticate_SetsIdentity(t *testing.T) {
	auth := &fakeAuthenticator{identities: map[string]domain.Identity{
		"good-token": {UserID: "user-42", Role: domain.RoleStudent, StudentID: "stu-1", Token: "good-token"},
	}}
	router := newAuthTestRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-42"}`, w.Body.String())
}
