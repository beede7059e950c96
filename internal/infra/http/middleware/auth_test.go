package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orionte/placement-api/internal/entity"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFrom(r.Context())
		assert.True(t, ok)
		assert.NotZero(t, actor.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	token, err := IssueToken(testSecret, 42, entity.RoleStaff, 3600, time.Now().Unix())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTAuth(testSecret)(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()

	JWTAuth(testSecret)(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken("other-secret", 42, entity.RoleStaff, 3600, time.Now().Unix())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTAuth(testSecret)(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour).Unix()
	token, err := IssueToken(testSecret, 42, entity.RoleStaff, 3600, issuedAt)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTAuth(testSecret)(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	token, err := IssueToken(testSecret, 42, entity.RoleAdmin, 3600, time.Now().Unix())
	assert.NoError(t, err)

	handler := JWTAuth(testSecret)(RequireRole(entity.RoleAdmin)(protectedEcho(t)))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleStaffAllowedAlongsideAdmin(t *testing.T) {
	token, err := IssueToken(testSecret, 42, entity.RoleStaff, 3600, time.Now().Unix())
	assert.NoError(t, err)

	// The gate protecting the service-price routes admits both roles.
	handler := JWTAuth(testSecret)(RequireRole(entity.RoleAdmin, entity.RoleStaff)(protectedEcho(t)))

	req := httptest.NewRequest(http.MethodPut, "/service-prices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	token, err := IssueToken(testSecret, 42, entity.RoleStaff, 3600, time.Now().Unix())
	assert.NoError(t, err)

	handler := JWTAuth(testSecret)(RequireRole(entity.RoleAdmin)(protectedEcho(t)))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
