package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mailtriage/internal/handler"
	"mailtriage/pkg/mq"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	ingestHandler *handler.IngestHandler,
	reviewHandler *handler.ReviewHandler,
	sapHandler *handler.SAPHandler,
	jwtSecret string,
	db *pgxpool.Pool,
	publisher *mq.Publisher,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.POST("/email/simulate", ingestHandler.SimulateNewEmail)

		auth.GET("/review/pending", reviewHandler.ListPending)
		auth.GET("/review/kpis", reviewHandler.KPIs)
		auth.GET("/review/items/:email_id", reviewHandler.GetItem)
		auth.POST("/review/items/:email_id/approve", reviewHandler.Approve)
		auth.POST("/review/items/:email_id/followup", reviewHandler.SendFollowup)
		auth.GET("/review/items/:email_id/followup/preview", reviewHandler.FollowupPreview)
		auth.GET("/review/actions", reviewHandler.ListActions)
		auth.GET("/review/followups", reviewHandler.ListFollowups)
		auth.GET("/review/followups/:email_id", reviewHandler.GetFollowup)

		auth.POST("/admin/sap/seed", sapHandler.Seed)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
