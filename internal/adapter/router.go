package adapter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-studio/internal/page"
	"asset-studio/internal/studio"
)

func NewRouter(ctrl *studio.Controller, p *page.Page, accessKey string) (*gin.Engine, error) {
	index, err := IndexHandler()
	if err != nil {
		return nil, err
	}

	r := gin.Default()
	r.Use(CORSMiddleware())

	r.GET("/", index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Asset Studio is running"})
	})

	api := r.Group("/api", AuthMiddleware(accessKey))
	api.POST("/submit", SubmitHandler(ctrl, p))
	api.GET("/state", StateHandler(p))

	return r, nil
}
