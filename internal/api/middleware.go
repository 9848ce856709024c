package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/logger"
	"github.com/maxaizer/placement-portal/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const userIDKey = "userID"

type userProvisioner interface {
	Provision(ctx context.Context, userID string) error
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		metrics.RequestsCounter.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(route).Observe(latency.Seconds())

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": latency,
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("request failed")
		} else {
			entry.Debug("request handled")
		}
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("panic while handling %v: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	})
}

// webhookAuth accepts requests whose bearer token equals the shared webhook secret.
func webhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || secret == "" || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(secret)) != 1 {
			metrics.WebhookCallsCounter.WithLabelValues(c.Request.URL.Path, "unauthorized").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// identity trusts the user id header set by the auth gateway and records first-time users.
func identity(header string, users userProvisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(header))
		if userID != "" {
			if err := users.Provision(c.Request.Context(), userID); err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to provision user %v: %v", userID, err)
				c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
				return
			}
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func logIfInternal(err error, path string) {
	if apperr.KindOf(err) == apperr.KindInternal {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("%v failed: %v", path, err)
	}
}
