package limits

import (
	"encoding/json"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/openmapkit/deployment-repo/api"
	"github.com/openmapkit/deployment-repo/common/config"
)

var requestLimiter *limiter.Limiter

func init() {
	requestLimiter = tollbooth.NewLimiter(0, nil)
	requestLimiter.SetIPLookups([]string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"})
	requestLimiter.SetTokenBucketExpirationTTL(time.Hour)

	b, _ := json.Marshal(api.RateLimitReached())
	requestLimiter.SetMessage(string(b))
	requestLimiter.SetMessageContentType("application/json")
}

// GetRequestLimiter returns the shared limiter, updated to the current config.
func GetRequestLimiter() *limiter.Limiter {
	requestLimiter.SetBurst(config.Get().RateLimit.BurstCount)
	requestLimiter.SetMax(config.Get().RateLimit.RequestsPerSecond)

	return requestLimiter
}
