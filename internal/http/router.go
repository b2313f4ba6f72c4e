package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gatherly/gatherly/internal/http/handlers"
	"github.com/gatherly/gatherly/internal/http/middlewares"
	"github.com/gatherly/gatherly/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	Tracing        bool
	Prom           *observability.Prom
	Metrics        http.Handler // mounted at /metrics when set
	Ping           func() error // readiness probe for the store
}

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for event payloads

func NewRouter(log *slog.Logger, events handlers.EventsService, opts RouterOptions) *gin.Engine {
	if opts.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())

	if len(opts.AllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(opts.AllowedOrigins))
	}

	if opts.Tracing {
		r.Use(otelgin.Middleware("gatherly-api"))
	}

	if opts.Prom != nil {
		r.Use(opts.Prom.GinHandleMiddleware())
	}

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	// health
	h := handlers.NewHealthHandler(opts.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	eventsHandler := handlers.NewEventsHandler(events)

	limiter := middlewares.NewRateLimiter(60, time.Minute)

	writes := r.Group("/")
	writes.Use(limiter.Middleware())
	writes.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// confirm/attendee posts carry no body, so the json check only guards create
	writes.POST("/events", middlewares.RequireJSON(), eventsHandler.CreateEvent)
	writes.POST("/events/:id/confirm", eventsHandler.ConfirmEvent)
	writes.POST("/events/:id/attendees/:userId", eventsHandler.AddAttendee)
	writes.DELETE("/events/:id/attendees/:userId", eventsHandler.RemoveAttendee)

	r.GET("/events/search", eventsHandler.SearchEvents)
	r.GET("/events/byOrganizer/:organizerId", eventsHandler.GetEventsByOrganizer)
	r.GET("/events/:id", eventsHandler.GetEventByID)

	return r
}
