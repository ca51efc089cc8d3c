package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tesoro/session"
)

// NewRouter wires the websocket endpoint and the status API onto one gin
// engine.
func NewRouter(hub *session.Hub) *gin.Engine {
	r := gin.Default()

	r.GET("/ws", func(c *gin.Context) {
		Serve(hub, c.Writer, c.Request)
	})

	r.GET("/api/online-players", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"count": hub.PlayerCount()})
	})

	return r
}
