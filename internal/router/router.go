package router

import (
	"reflect"
	"strings"

	"reviewhub/internal/handler"
	"reviewhub/internal/middleware"
	"reviewhub/internal/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Dependencies struct {
	AuthService service.AuthService
	UserService service.UserService

	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	GenreHandler    *handler.GenreHandler
	TitleHandler    *handler.TitleHandler
	ReviewHandler   *handler.ReviewHandler
	CommentHandler  *handler.CommentHandler
	UserHandler     *handler.UserHandler

	AuthRateLimiter *middleware.RateLimiter
}

// Setup builds the gin engine: public reads, an authenticated group,
// and an admin group layered on top of it.
func Setup(deps Dependencies) *gin.Engine {
	registerValidatorTagNames()

	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth", deps.AuthRateLimiter.Middleware())
	deps.AuthHandler.RegisterRoutes(auth)

	authed := api.Group("", middleware.AuthMiddleware(deps.AuthService, deps.UserService))
	admin := authed.Group("", middleware.RequireAdmin())

	deps.CategoryHandler.RegisterRoutes(api, admin)
	deps.GenreHandler.RegisterRoutes(api, admin)
	deps.TitleHandler.RegisterRoutes(api, admin)
	deps.ReviewHandler.RegisterRoutes(api, authed)
	deps.CommentHandler.RegisterRoutes(api, authed)
	deps.UserHandler.RegisterRoutes(authed, admin)

	return r
}

// registerValidatorTagNames makes binding errors report json field
// names instead of Go struct field names.
func registerValidatorTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
