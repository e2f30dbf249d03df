package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/landedcost/internal/observability/context"
	"github.com/smallbiznis/landedcost/internal/usercontext"
)

const contextUserIDKey = "user_id"

// AuthRequired resolves the session cookie and puts the owner id on the
// request context. Every catalog query downstream is scoped by it.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if status, _ := mapError(err); status == http.StatusUnauthorized {
				s.sessions.Clear(c)
			}
			AbortWithError(c, err)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), sess.UserID)
		ctx = obscontext.WithUserID(ctx, sess.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextUserIDKey, sess.UserID.String())
		c.Next()
	}
}

func currentUserID(c *gin.Context) (snowflake.ID, bool) {
	return usercontext.UserIDFromContext(c.Request.Context())
}
