// Package ginutil holds small request-parsing helpers shared by handlers.
package ginutil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryIntRange reads an integer query parameter clamped to [min, max].
// A missing or malformed value yields def.
func QueryIntRange(c *gin.Context, key string, def, min, max int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ParamIndex reads a zero-based position from the path
func ParamIndex(c *gin.Context, key string) (int, error) {
	v, err := strconv.Atoi(c.Param(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s: negative index %d", key, v)
	}
	return v, nil
}

// ParamID reads a positive row id from the path
func ParamID(c *gin.Context, key string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s: id must be positive, got %d", key, v)
	}
	return v, nil
}
