package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduvillage-api/pkg/response"
)

const cacheHitKey = "cache_hit"

// SetCacheHit records whether the response was served from cache. It must be
// called before the handler writes the body.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)[cacheHitKey] = hit
}

// ExtractMeta returns the metadata map stored on the context.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(response.MetaContextKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	c.Set(response.MetaContextKey, meta)
	return meta
}
