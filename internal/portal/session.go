package portal

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/flightdesk/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sessions loads the caller's session into the request context and keeps its
// cookie current.
func Sessions(store session.Store, cookie string, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie)
		s, err := store.Load(c.Request.Context(), id)
		if err != nil {
			log.Error("load session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}

		setCookie(c, cookie, s.ID, ttl)
		c.Set(renewCookieKey, func(id string) { setCookie(c, cookie, id, ttl) })
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), s))
		c.Next()
	}
}

const renewCookieKey = "portal.renew_cookie"

// setCookie replaces any session cookie already queued on the response.
func setCookie(c *gin.Context, name, id string, ttl time.Duration) {
	h := c.Writer.Header()
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, name+"=") {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, id, int(ttl.Seconds()), "/", "", false, true)
}

// renewCookie points the session cookie at the id the session carries now.
func renewCookie(c *gin.Context) {
	s, err := session.FromContext(c.Request.Context())
	if err != nil {
		return
	}
	if fn, ok := c.Get(renewCookieKey); ok {
		fn.(func(string))(s.ID)
	}
}

func requireSignIn(c *gin.Context) {
	s, err := session.FromContext(c.Request.Context())
	if err != nil || !s.SignedIn() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}
	c.Next()
}
