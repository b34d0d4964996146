package webserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/amberleaf/amberspa/internal/app"
	"github.com/amberleaf/amberspa/internal/cache"
)

const (
	ContextAppKey = "appctx"
)

type WebServer struct {
	root   *echo.Echo
	appCtx app.AppContext
	api    *echo.Group
}

var server *WebServer

// CustomValidator wires go-playground validation into echo's c.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Init builds the echo server: request logging, recovery, the response
// cache for /api reads, app context injection and SPA static hosting.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.Recover())
	e.Use(ZapLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextAppKey, appCtx)
			return next(c)
		}
	})

	responseCache := cache.New(cache.DefaultTTL, appCtx.Bus()).Exclude("cart", "login", "register")
	api := e.Group("/api", responseCache.Middleware(appCtx.Bus()))

	// Serve the SPA bundle; unmatched non-API routes fall back to
	// index.html (client-side routing).
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  appCtx.Config().Web.AssetsDir,
		Index: "index.html",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api")
		},
	}))

	server = &WebServer{root: e, appCtx: appCtx, api: api}
	return server
}

// Instance returns the singleton server (nil before Init).
func Instance() *WebServer {
	return server
}

// Echo exposes the underlying echo instance, mainly for tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Listen starts the HTTP server and blocks until it stops.
func (s *WebServer) Listen() error {
	cfg := s.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	return s.root.Start(addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// ZapLogger logs one line per request through the global zap logger.
func ZapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			zap.L().Info("http request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			)
			return nil
		}
	}
}

// ApiGET registers a GET handler under /api.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers a POST handler under /api.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers a PUT handler under /api.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// ApiDELETE registers a DELETE handler under /api.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// GetAppContext extracts the application context injected per request.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(ContextAppKey).(app.AppContext)
}
