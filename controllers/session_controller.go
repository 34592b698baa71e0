package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/iamaamins/sporkbox-client-sub001/pkg/resp"
	"github.com/iamaamins/sporkbox-client-sub001/services"
	"github.com/iamaamins/sporkbox-client-sub001/utils"
)

type SessionController struct {
	Sessions *services.SessionService
}

func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{Sessions: sessions}
}

// GET /me
func (ctl *SessionController) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID := utils.CurrentUserID(c)
	token := utils.BearerToken(c)

	sess, err := ctl.Sessions.Current(ctx, userID, token)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	// The token's role claim is authoritative; a mismatch means the cached
	// session predates a role change upstream.
	if role := utils.CurrentRole(c); role != "" && role != string(sess.Role) {
		ctl.Sessions.Forget(ctx, userID)
		sess, err = ctl.Sessions.Current(ctx, userID, token)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
	}
	resp.OK(c, sess)
}

// DELETE /me/cache — drop the cached session, e.g. right after the user's
// company membership changed upstream.
func (ctl *SessionController) Refresh(c *gin.Context) {
	ctl.Sessions.Forget(c.Request.Context(), utils.CurrentUserID(c))
	resp.OK(c, gin.H{"refreshed": true})
}
