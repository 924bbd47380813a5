package logging

import (
	"fmt"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"time"
)

// InitLogging sets the level of the standard logger and installs the
// formatter with the given name, which is either "text" or "json".
func InitLogging(level string, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	switch format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown logging format '%s'", format)
	}
	log.SetLevel(lvl)
	return nil
}

// GinLoggingHook logs every request served by gin. Requests failing with a
// server error are logged at error level.
func GinLoggingHook() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		entry := log.WithFields(log.Fields{
			"client_ip": c.ClientIP(),
			"duration":  duration,
			"method":    c.Request.Method,
			"path":      c.Request.RequestURI,
			"status":    c.Writer.Status(),
		})

		if c.Writer.Status() >= 500 {
			entry.Error(c.Errors.String())
		} else {
			entry.Debug("served request")
		}
	}
}
