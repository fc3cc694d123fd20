package webserver

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/trustmesh/newsverify/src/api/config"
	"github.com/trustmesh/newsverify/src/verifier"
)

func New(cfg config.Config, pipe *verifier.Pipeline, rdb *redis.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery(), RequestID())

	corsCfg := cors.DefaultConfig()
	if cfg.AllowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	g.Use(cors.New(corsCfg))

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := g.Group("/v1")
	if cfg.JWTSecret != "" {
		v1.Use(JWT([]byte(cfg.JWTSecret)))
	}
	if rdb != nil {
		v1.Use(RateLimit(rdb, cfg.RateLimit, cfg.RateWindowSecs))
	}

	h := NewVerify(pipe, cfg.RequestTimeout)
	v1.POST("/verify", h.Create)

	return g
}
