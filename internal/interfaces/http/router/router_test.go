package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serveGroup mounts the group under /api/v1 and performs one request.
func serveGroup(g *DomainGroup, method, target string) *httptest.ResponseRecorder {
	engine := gin.New()
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func echo(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func TestNewRouterDefaults(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r2 := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r2.apiVersion)
}

func TestRouterSetupMountsUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	group := NewDomainGroup("system", "/system")
	group.GET("/ping", echo("pong"))

	r.Register(group)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/system/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroupAccessors(t *testing.T) {
	g := NewDomainGroup("billing", "/invoices")
	assert.Equal(t, "billing", g.Name())
	assert.Equal(t, "/invoices", g.Prefix())
}

func TestDomainGroupMethods(t *testing.T) {
	tests := []struct {
		name   string
		build  func(g *DomainGroup)
		method string
		target string
	}{
		{
			name:   "GET list",
			build:  func(g *DomainGroup) { g.GET("", echo("ok")) },
			method: http.MethodGet,
			target: "/api/v1/invoices",
		},
		{
			name:   "POST nested payment",
			build:  func(g *DomainGroup) { g.POST("/:id/payments", echo("ok")) },
			method: http.MethodPost,
			target: "/api/v1/invoices/12/payments",
		},
		{
			name:   "PUT by id",
			build:  func(g *DomainGroup) { g.PUT("/:id", echo("ok")) },
			method: http.MethodPut,
			target: "/api/v1/invoices/5",
		},
		{
			name:   "DELETE by id",
			build:  func(g *DomainGroup) { g.DELETE("/:id", echo("ok")) },
			method: http.MethodDelete,
			target: "/api/v1/invoices/5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewDomainGroup("billing", "/invoices")
			tt.build(g)

			w := serveGroup(g, tt.method, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestDomainGroupMiddlewareApplies(t *testing.T) {
	g := NewDomainGroup("billing", "/invoices")
	g.Use(func(c *gin.Context) {
		c.Header("X-Test-Middleware", "applied")
		c.Next()
	})
	g.GET("", echo("ok"))

	w := serveGroup(g, http.MethodGet, "/api/v1/invoices")
	assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
}

func TestDomainGroupSubgroups(t *testing.T) {
	g := NewDomainGroup("reports", "/reports")
	statements := g.Group("statements", "/customers")
	statements.GET("/:id/statement", echo("statement"))

	w := serveGroup(g, http.MethodGet, "/api/v1/reports/customers/9/statement")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "statement", w.Body.String())
}

func TestRouterRegistersMultipleGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	customers := NewDomainGroup("partner", "/customers")
	customers.GET("", echo("customers"))

	invoices := NewDomainGroup("billing", "/invoices")
	invoices.
		GET("", echo("list")).
		POST("", echo("create")).
		POST("/:id/void", echo("void"))

	r.Register(customers).Register(invoices).Setup()

	for _, tt := range []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/api/v1/customers", "customers"},
		{http.MethodGet, "/api/v1/invoices", "list"},
		{http.MethodPost, "/api/v1/invoices", "create"},
		{http.MethodPost, "/api/v1/invoices/3/void", "void"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.target)
		assert.Equal(t, tt.body, w.Body.String())
	}
}
