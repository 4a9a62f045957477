// Package middleware flags redirect requests that should not be counted as
// clicks. Flagged requests are still redirected.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set on flagged requests.
const (
	KeyBot         = "is_bot"
	KeyRateLimited = "rate_limited"
)

// botPatterns are known bot User-Agent substrings (lowercase).
var botPatterns = []string{
	"googlebot", "bingbot", "slurp", "duckduckbot",
	"baiduspider", "yandexbot", "facebookexternalhit",
	"twitterbot", "linkedinbot", "slackbot", "discordbot",
	"whatsapp", "telegrambot", "embedly", "applebot",
	"semrushbot", "ahrefsbot", "mj12bot", "petalbot",
	"bytespider", "headlesschrome", "curl/", "python-requests",
}

// BotFilter sets KeyBot for known bot user agents and for requests without one.
func BotFilter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ua := strings.ToLower(c.Request.UserAgent())
		if ua == "" || isBot(ua) {
			c.Set(KeyBot, true)
		}
		c.Next()
	}
}

// IsBot reports whether BotFilter flagged the request.
func IsBot(c *gin.Context) bool {
	return c.GetBool(KeyBot)
}

func isBot(ua string) bool {
	for _, pattern := range botPatterns {
		if strings.Contains(ua, pattern) {
			return true
		}
	}
	return false
}
