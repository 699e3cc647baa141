package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
)

// MetaContextKey is the gin context key holding per-request response metadata.
const MetaContextKey = "response_meta"

// FailedContextKey is set on the gin context once a failure envelope is written.
// Business failures keep HTTP 200, so middleware reads this instead of the status.
const FailedContextKey = "response_failed"

// Envelope is the flat `{success, message?, code?, ...payload}` body every
// endpoint returns. Payload keys are merged at the top level.
type Envelope map[string]interface{}

// Payload is the set of top-level keys attached to a successful response.
type Payload = gin.H

// OK sends a success envelope merging the provided payload keys.
func OK(c *gin.Context, payload Payload) {
	JSON(c, http.StatusOK, "", payload)
}

// Message sends a success envelope carrying only a human readable message.
func Message(c *gin.Context, message string) {
	JSON(c, http.StatusOK, message, nil)
}

// JSON writes a success envelope with an explicit status and optional message.
func JSON(c *gin.Context, status int, message string, payload Payload) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	body := Envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		if key == "success" {
			continue
		}
		body[key] = value
	}
	if meta := metaFrom(c); len(meta) > 0 {
		body["meta"] = meta
	}
	c.JSON(status, body)
}

// Error sends a failure envelope converting the error to the common structure.
// Internal errors never leak their cause to the client.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr == nil {
		appErr = appErrors.ErrInternal
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.Set(FailedContextKey, true)
	message := appErr.Message
	if appErrors.IsInternal(appErr) {
		_ = c.Error(appErr)
		message = appErrors.ErrInternal.Message
	}
	c.JSON(appErr.Status, Envelope{
		"success": false,
		"message": message,
		"code":    appErr.Code,
	})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func metaFrom(c *gin.Context) map[string]interface{} {
	if value, exists := c.Get(MetaContextKey); exists {
		if meta, ok := value.(map[string]interface{}); ok {
			return meta
		}
	}
	return nil
}
