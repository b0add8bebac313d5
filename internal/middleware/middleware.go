package middleware

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wordsearch/solver/internal/auth"
)

const (
	AuthUserKey = "authUser"
)

// AuthMiddleware gates the admin-only routes (batch regeneration, stats)
// behind a valid admin session token.
type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth is a middleware that requires a valid JWT token
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			if err == auth.ErrTokenExpired {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(AuthUserKey, claims)
		c.Next()
	}
}

// OptionalAuth is a middleware that validates a JWT token if present
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			claims, err := m.authService.ValidateToken(token)
			if err == nil {
				c.Set(AuthUserKey, claims)
			}
		}
		c.Next()
	}
}

// extractToken extracts the JWT token from the Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}

// GetAuthUser retrieves the authenticated admin claims from the context
func GetAuthUser(c *gin.Context) *auth.Claims {
	claims, exists := c.Get(AuthUserKey)
	if !exists {
		return nil
	}
	return claims.(*auth.Claims)
}

// CORS middleware
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// EndpointMetrics holds running count/min/max/avg for one route. There is no
// P95 here: session creation replies in milliseconds (the solve itself runs
// in a background goroutine long after the handler returns), so a route's
// full request-time distribution is never long enough to need percentile
// tracking — count and average already say whether a route is behaving.
type EndpointMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// sessionMetrics holds performance statistics for the session API.
type sessionMetrics struct {
	mu              sync.RWMutex
	requestCount    int64
	totalDuration   time.Duration
	endpointMetrics map[string]*EndpointMetrics
}

var globalMetrics = &sessionMetrics{
	endpointMetrics: make(map[string]*EndpointMetrics),
}

// PerformanceMonitor tracks request latency for the session API. A session's
// own solve time is reported separately, in its own result (res.ElapsedMS);
// this middleware only ever sees how long the HTTP handler itself took to
// respond, which for POST /sessions and POST /admin/batch is just the time
// to validate the request and spawn the background goroutine.
func PerformanceMonitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start)

		// Skip health check and the session progress websocket: the
		// websocket holds its connection open for the life of a solve, so
		// its "request duration" is meaningless as a latency sample.
		if path != "/health" && !strings.HasSuffix(path, "/ws") {
			threshold := 200 * time.Millisecond
			if duration > threshold {
				log.Printf("[SLOW] %s %s - %v (status: %d)",
					c.Request.Method, path, duration, c.Writer.Status())
			}

			globalMetrics.recordRequest(path, duration)
		}

		c.Header("X-Response-Time", duration.String())
	}
}

// recordRequest records performance metrics for a request
func (sm *sessionMetrics) recordRequest(path string, duration time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.requestCount++
	sm.totalDuration += duration

	metrics, exists := sm.endpointMetrics[path]
	if !exists {
		metrics = &EndpointMetrics{MinTime: duration, MaxTime: duration}
		sm.endpointMetrics[path] = metrics
	}

	metrics.Count++
	metrics.TotalTime += duration

	if duration < metrics.MinTime {
		metrics.MinTime = duration
	}
	if duration > metrics.MaxTime {
		metrics.MaxTime = duration
	}
}

// GetMetrics returns current performance metrics, served by GET /metrics.
func GetMetrics() map[string]interface{} {
	globalMetrics.mu.RLock()
	defer globalMetrics.mu.RUnlock()

	endpoints := make(map[string]interface{})
	for path, metrics := range globalMetrics.endpointMetrics {
		avgTime := time.Duration(0)
		if metrics.Count > 0 {
			avgTime = metrics.TotalTime / time.Duration(metrics.Count)
		}

		endpoints[path] = map[string]interface{}{
			"count":  metrics.Count,
			"avg_ms": avgTime.Milliseconds(),
			"min_ms": metrics.MinTime.Milliseconds(),
			"max_ms": metrics.MaxTime.Milliseconds(),
		}
	}

	avgDuration := time.Duration(0)
	if globalMetrics.requestCount > 0 {
		avgDuration = globalMetrics.totalDuration / time.Duration(globalMetrics.requestCount)
	}

	return map[string]interface{}{
		"total_requests":  globalMetrics.requestCount,
		"avg_duration_ms": avgDuration.Milliseconds(),
		"endpoints":       endpoints,
	}
}
