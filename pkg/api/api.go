package api

import (
	"context"
	"fmt"
	"github.com/blockblu-io/rewards-verifier/pkg/auth"
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	"github.com/blockblu-io/rewards-verifier/pkg/logging"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const RootPath = "rewards"

// EpochSyncer computes the boundary of an epoch and stores the result.
type EpochSyncer interface {
	SyncEpoch(ctx context.Context, epoch uint) (*db.EpochResult, error)
}

// getPath assembles the path for api calls given the relative path.
// This functions returns the complete path that can be passed to the
// gin framework.
func getPath(relativePath string) string {
	return fmt.Sprintf("%s/%s", RootPath, relativePath)
}

// routes returns a list of all routes for this api.
func routes(idb db.DB, syncer EpochSyncer, auth auth.Authenticator) []func(router *gin.Engine) {
	return []func(*gin.Engine){
		heartbeat(idb),
		getComputedEpochs(idb),
		getEpochResult(idb),
		getPoolResults(idb),
		getPoolResult(idb),
		getAccountRewards(idb),
		postComputeEpoch(syncer, auth),
	}
}

// NewRouter creates the gin engine serving all routes of this api.
func NewRouter(idb db.DB, syncer EpochSyncer, auth auth.Authenticator) *gin.Engine {
	router := gin.New()
	router.Use(logging.GinLoggingHook(), gin.Recovery())
	_ = router.SetTrustedProxies(nil)
	for _, function := range routes(idb, syncer, auth) {
		function(router)
	}
	return router
}

// Serve starts the API at the given hostname and on the given port.
func Serve(hostname string, port int, idb db.DB, syncer EpochSyncer, auth auth.Authenticator) error {
	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(idb, syncer, auth)
	address := fmt.Sprintf("%s:%d", hostname, port)
	log.Infof("starting the API at address '%s'", address)
	return router.Run(address)
}
