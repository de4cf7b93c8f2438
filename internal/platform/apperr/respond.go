package apperr

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/correlation"
	"library-backend/internal/platform/logging"
)

// Respond writes the error payload for err and logs it with the active
// correlation id. 5xx details stay in the log only.
func Respond(c *gin.Context, log logrus.FieldLogger, err error) {
	ctx := c.Request.Context()
	status := ToHTTPStatus(err)

	entry := logging.FromContext(ctx, log).WithError(err).WithField("status", status)
	if status >= 500 {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}

	c.AbortWithStatusJSON(status, PayloadFrom(correlation.FromContext(ctx), err))
}

// RespondMissing は必須パラメータ欠落の 400 を返す。
func RespondMissing(c *gin.Context, log logrus.FieldLogger, param string) {
	Respond(c, log, ErrMissing(param))
}
