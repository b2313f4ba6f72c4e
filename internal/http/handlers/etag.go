package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondJSONWithETag serves the payload with a content-derived ETag and
// honors If-None-Match so clients polling a single event can skip the body.
func RespondJSONWithETag(ctx *gin.Context, status int, payload interface{}) {
	body, err := json.Marshal(payload)

	if err != nil {
		// fall back to a plain response; a marshal failure here will
		// surface identically below anyway
		ctx.JSON(status, payload)
		return
	}

	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	ctx.Header("ETag", etag)

	if etagMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(status, "application/json; charset=utf-8", body)
}

func etagMatches(header, current string) bool {
	header = strings.TrimSpace(header)

	if header == "" {
		return false
	}

	if header == "*" {
		return true
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)

		// weak validators (W/"...") compare equal for our purposes
		candidate = strings.TrimPrefix(candidate, "W/")

		if candidate == current {
			return true
		}
	}

	return false
}
