package api

import (
	"github.com/blockblu-io/rewards-verifier/pkg/api/dto"
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	"github.com/gin-gonic/gin"
	"net/http"
)

// getAccountRewards lists all stored rewards paid to the stake address given
// in the path.
func getAccountRewards(idb db.DB) func(router *gin.Engine) {
	return func(router *gin.Engine) {
		router.GET(getPath("account/:address"), func(c *gin.Context) {
			rewards, err := idb.GetRewards(c, c.Param("address"))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorPayload(err.Error()))
				return
			}
			c.JSON(http.StatusOK, okPayload(dto.NewRewards(rewards)))
		})
	}
}
