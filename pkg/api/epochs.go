package api

import (
	"github.com/blockblu-io/rewards-verifier/pkg/api/dto"
	"github.com/blockblu-io/rewards-verifier/pkg/auth"
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const (
	defaultEpochLimit = 10
	defaultPoolLimit  = 100
	maxPoolLimit      = 1000
)

func getComputedEpochs(idb db.DB) func(router *gin.Engine) {
	return func(router *gin.Engine) {
		router.GET(getPath("epoch"), func(c *gin.Context) {
			limit, ok := parseQueryUint(c, "limit", defaultEpochLimit)
			if !ok {
				return
			}
			ordering := db.OrderingDesc
			if c.Query("order") == "asc" {
				ordering = db.OrderingAsc
			}
			epochs, err := idb.GetComputedEpochs(c, ordering, limit)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorPayload(err.Error()))
				return
			}
			if epochs == nil {
				epochs = []uint{}
			}
			c.JSON(http.StatusOK, okPayload(epochs))
		})
	}
}

// handleEpochResultFetching fetches the result of the epoch given in the
// path. The request is aborted, if no such result could be fetched.
func handleEpochResultFetching(idb db.DB, c *gin.Context) (*db.EpochResult, bool) {
	epoch, ok := parseEpoch(c)
	if !ok {
		return nil, false
	}
	result, err := idb.GetEpochResult(c, epoch)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorPayload(err.Error()))
		return nil, false
	}
	if result == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorPayload("no result for epoch could be found"))
		return nil, false
	}
	return result, true
}

func getEpochResult(idb db.DB) func(router *gin.Engine) {
	return func(router *gin.Engine) {
		router.GET(getPath("epoch/:epoch"), func(c *gin.Context) {
			result, ok := handleEpochResultFetching(idb, c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, okPayload(dto.NewEpochResult(result)))
		})
	}
}

func getPoolResults(idb db.DB) func(router *gin.Engine) {
	return func(router *gin.Engine) {
		router.GET(getPath("epoch/:epoch/pool"), func(c *gin.Context) {
			result, ok := handleEpochResultFetching(idb, c)
			if !ok {
				return
			}
			offset, ok := parseQueryUint(c, "offset", 0)
			if !ok {
				return
			}
			limit, ok := parseQueryUint(c, "limit", defaultPoolLimit)
			if !ok {
				return
			}
			if limit > maxPoolLimit {
				limit = maxPoolLimit
			}
			pools, err := idb.GetPoolResults(c, result.Epoch, offset, limit)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorPayload(err.Error()))
				return
			}
			c.JSON(http.StatusOK, okPayload(dto.NewPoolResults(pools)))
		})
	}
}

func getPoolResult(idb db.DB) func(router *gin.Engine) {
	return func(router *gin.Engine) {
		router.GET(getPath("epoch/:epoch/pool/:pool"), func(c *gin.Context) {
			epoch, ok := parseEpoch(c)
			if !ok {
				return
			}
			pool, err := idb.GetPoolResult(c, epoch, c.Param("pool"))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorPayload(err.Error()))
				return
			}
			if pool == nil {
				c.AbortWithStatusJSON(http.StatusNotFound, errorPayload("no result for pool could be found"))
				return
			}
			c.JSON(http.StatusOK, okPayload(dto.NewPoolResult(pool)))
		})
	}
}

// postComputeEpoch computes the given epoch again and overwrites the stored
// result. Only authenticated users may call it.
func postComputeEpoch(syncer EpochSyncer, auth auth.Authenticator) func(router *gin.Engine) {
	return func(router *gin.Engine) {
		router.POST(getPath("epoch/:epoch/compute"), func(c *gin.Context) {
			username, password, ok := c.Request.BasicAuth()
			if !ok || !auth.CheckAuthentication(username, password) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					errorPayload("you aren't authorized to call this method"))
				return
			}
			epoch, ok := parseEpoch(c)
			if !ok {
				return
			}
			result, err := syncer.SyncEpoch(c, epoch)
			if err != nil {
				log.Errorf("recomputing epoch %d failed: %s", epoch, err.Error())
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorPayload(err.Error()))
				return
			}
			c.JSON(http.StatusOK, okPayload(dto.NewEpochResult(result)))
		})
	}
}
