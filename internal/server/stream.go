package server

import (
	"io"

	"github.com/gin-gonic/gin"
)

// StreamNotifications pushes the owner's notifications over server-sent
// events as they are created. The connection stays open until the client
// disconnects.
func (s *Server) StreamNotifications(c *gin.Context) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	sub := s.hub.Subscribe(ownerID)
	defer s.hub.Unsubscribe(sub)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case record, open := <-sub.C():
			if !open {
				return false
			}
			c.SSEvent("notification", toNotificationResponse(*record))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
