package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/config"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/datasource"
)

func New(cfg config.Config, src datasource.Source) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, src)
	return g
}

func attachRoutes(r *gin.Engine, cfg config.Config, src datasource.Source) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	voteH := NewVotes(src)
	billH := NewBills(src)
	memberH := NewMembers(src)

	api := r.Group("/api")
	{
		api.GET("/votes", voteH.List)
		api.GET("/votes/:session/:number", voteH.Get)
		api.GET("/bills", billH.List)
		api.GET("/bills/:session/:number", billH.Get)
		api.GET("/members", memberH.List)
		api.GET("/members/:id", memberH.Get)
		api.GET("/members/:id/votes", memberH.Votes)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
}
