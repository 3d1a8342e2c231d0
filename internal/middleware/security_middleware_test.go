package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-pos-backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/")
	group.Use(AuthMiddleware())
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	return r
}

func request(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRequiresHeader(t *testing.T) {
	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer garbage").Code)
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	token, err := auth.GenerateToken(3, RoleVendedor)
	require.NoError(t, err)

	r := protectedRouter()
	w := request(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), RoleVendedor)
}

func TestRequireRoleAcceptsAnyListedRole(t *testing.T) {
	r := protectedRouter(RoleSuperAdmin, RoleAdmin)

	adminToken, err := auth.GenerateToken(1, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, request(r, "Bearer "+adminToken).Code)

	superToken, err := auth.GenerateToken(2, RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, request(r, "Bearer "+superToken).Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	r := protectedRouter(RoleSuperAdmin, RoleAdmin)

	sellerToken, err := auth.GenerateToken(3, RoleVendedor)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, request(r, "Bearer "+sellerToken).Code)
}
