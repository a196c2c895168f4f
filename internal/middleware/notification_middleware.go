package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/eventku/internal/notification"
)

func NotificationMiddleware(publisher *notification.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("notifier", publisher)
		c.Next()
	}
}

func GetNotifier(c *gin.Context) *notification.Publisher {
	value, exists := c.Get("notifier")
	if !exists {
		return nil
	}
	publisher, _ := value.(*notification.Publisher)
	return publisher
}
