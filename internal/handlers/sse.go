package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.Hub
}

func NewSSEHandler(hub *sse.Hub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Subscribe opens an event stream. The channels to join come from repeated
// "channel" query parameters; with none given the client only receives
// heartbeats.
func (sh *SSEHandler) Subscribe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "no_session", nil)
		return
	}
	client := sh.hub.NewClient(rd.UserID)
	defer sh.hub.CloseClient(client)
	for _, channel := range c.QueryArray("channel") {
		sh.hub.AddChannel(client, channel)
	}
	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
