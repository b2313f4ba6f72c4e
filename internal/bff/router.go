package bff

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gatherly/gatherly/internal/bff/session"
	"github.com/gatherly/gatherly/internal/http/middlewares"
	"github.com/gatherly/gatherly/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	Tracing        bool
	Prom           *observability.Prom
	Metrics        http.Handler
}

// NewRouter wires the GraphQL endpoint into the same gin shell the events
// API uses, so both services share middleware behavior.
func NewRouter(log *slog.Logger, schema graphql.Schema, verifier *session.Verifier, opts RouterOptions) *gin.Engine {
	if opts.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())

	if len(opts.AllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(opts.AllowedOrigins))
	}

	if opts.Tracing {
		r.Use(otelgin.Middleware("gatherly-bff"))
	}

	if opts.Prom != nil {
		r.Use(opts.Prom.GinHandleMiddleware())
	}

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	gql := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   opts.Env == "dev",
		GraphiQL: opts.Env == "dev",
	})

	graphqlGroup := r.Group("/graphql")
	graphqlGroup.Use(session.Middleware(verifier))
	graphqlGroup.Use(middlewares.NewRateLimiter(120, time.Minute).Middleware())

	graphqlGroup.POST("", gin.WrapH(gql))
	graphqlGroup.GET("", gin.WrapH(gql))

	return r
}
