package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// currentUser extracts the authenticated user's id and role claim from the context.
// Both are set by the JWT middleware; missing values read as the zero user.
func currentUser(c *gin.Context) (uint, string) {
	id, _ := c.Get("userID")       // Set by JWTAuthMiddleware
	role, _ := c.Get("userRole")   // Role claim from the token
	uid, _ := id.(uint)            // Zero when unset
	roleStr, _ := role.(string)    // Empty when unset
	return uid, roleStr
}

// canAccessUser reports whether the caller may act on ownerID's data:
// the owner themselves, or any admin.
func canAccessUser(c *gin.Context, ownerID uint) bool {
	uid, role := currentUser(c)
	return uid == ownerID || role == "admin"
}

// parseUintParam reads a numeric path parameter, responding 400 itself on garbage
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32) // Path params arrive as strings
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}
