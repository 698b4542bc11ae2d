package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/entropy/src/entropy"
)

type Handlers struct {
	src    entropy.Source
	health *entropy.Health
	log    *zap.SugaredLogger

	defaultSampleSize int
	maxSampleSize     int
}

func NewHandlers(src entropy.Source, h *entropy.Health, log *zap.SugaredLogger, defaultSample, maxSample int) *Handlers {
	return &Handlers{
		src:               src,
		health:            h,
		log:               log,
		defaultSampleSize: defaultSample,
		maxSampleSize:     maxSample,
	}
}

func (h *Handlers) sourceOK(c *gin.Context) bool {
	if h.health == nil {
		responder{c}.err(http.StatusServiceUnavailable, "Source unhealthy: missing health monitor")
		return false
	}

	ok, msg, _ := h.health.Snapshot()
	if ok {
		return true
	}

	responder{c}.err(http.StatusServiceUnavailable, "Source unhealthy: "+msg)
	return false
}

func (h *Handlers) requestID() (string, error) {
	id, err := newRequestID(h.src)
	if err != nil && h.health != nil {
		h.health.Set(false, "error fetching random bytes for request id: "+err.Error())
	}
	return id, err
}

/*
handleSource enforces:
1. Source health check
2. Outcome computation (NO request id here)
3. Error handling
4. Request id generation ONLY after success
5. JSON vs plaintext response
*/
func (h *Handlers) handleSource(
	c *gin.Context,
	work func() (text string, payload gin.H, status int, errMsg string),
) {
	if !h.sourceOK(c) {
		return
	}

	text, payload, status, errMsg := work()
	if errMsg != "" {
		responder{c}.err(status, errMsg)
		return
	}

	requestID, err := h.requestID()
	if err != nil {
		responder{c}.err(http.StatusInternalServerError, "Error generating request id.")
		return
	}

	responder{c}.ok(text, payload, requestID)
}

func CheckHeader(headerName, expectedValue string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Auth disabled if not configured
		if expectedValue == "" {
			c.Next()
			return
		}

		if c.GetHeader(headerName) != expectedValue {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
