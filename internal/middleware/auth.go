package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardman-api/internal/service"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "access_token"

// TokenParser validates session tokens and returns their claims
type TokenParser interface {
	Parse(tokenStr string) (*service.Claims, error)
}

// Auth returns a middleware that requires a verified session.
// The session token travels in an httpOnly cookie, never in a header.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		claims, err := parser.Parse(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// A pending (pre-verification) token has no user ID yet
		if claims.UserID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Account not verified",
			})
			c.Abort()
			return
		}

		c.Set("user_id", *claims.UserID)
		c.Set("claims", claims)

		c.Next()
	}
}

// PendingAuth returns a middleware that accepts any valid session token,
// verified or not. The verification endpoint uses it to reach the email
// claim of a pending session.
func PendingAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		claims, err := parser.Parse(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("claims", claims)

		c.Next()
	}
}
