package api

import (
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	"github.com/gin-gonic/gin"
	"net/http"
)

// heartbeat returns an "ok" status object in JSON format together with the
// latest computed epoch, if any. It could be used to monitor the
// reachability of this application and the progress of the syncer.
func heartbeat(idb db.DB) func(router *gin.Engine) {
	return func(router *gin.Engine) {
		router.GET(getPath("heartbeat"), func(c *gin.Context) {
			epochs, err := idb.GetComputedEpochs(c, db.OrderingDesc, 1)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorPayload(err.Error()))
				return
			}
			if len(epochs) == 0 {
				c.JSON(http.StatusOK, okPayload(nil))
				return
			}
			c.JSON(http.StatusOK, okPayload(gin.H{"latestEpoch": epochs[0]}))
		})
	}
}
