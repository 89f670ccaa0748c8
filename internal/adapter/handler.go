package adapter

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"asset-studio/internal/page"
	"asset-studio/internal/studio"
	"asset-studio/web"
)

type SubmitRequest struct {
	Prompt string `json:"prompt"`
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// AuthMiddleware guards the API with a bearer key. An empty key disables it.
func AuthMiddleware(requiredKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requiredKey == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		if parts[1] != requiredKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid access key"})
			return
		}

		c.Next()
	}
}

func IndexHandler() (gin.HandlerFunc, error) {
	index, err := web.FS.ReadFile("index.html")
	if err != nil {
		return nil, err
	}
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}, nil
}

// SubmitHandler is the button binding of the trigger control. The attempt is
// detached from the request context: closing the page does not cancel it.
func SubmitHandler(ctrl *studio.Controller, p *page.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		out := ctrl.Submit(context.WithoutCancel(c.Request.Context()), req.Prompt)
		if errors.Is(out.Err, studio.ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": out.Err.Error(), "page": p.Snapshot()})
			return
		}
		p.SetPrompt(req.Prompt)

		log.Printf("[Web] Submit finished | State: %s", out.State)
		c.JSON(http.StatusOK, gin.H{
			"state": out.State,
			"page":  p.Snapshot(),
		})
	}
}

func StateHandler(p *page.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p.Snapshot())
	}
}
