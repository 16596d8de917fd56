package webserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/datasource"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/openparliament"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func pageArgs(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// fail maps source-layer failures onto HTTP statuses: missing records are
// 404, upstream trouble is 502, anything else is 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, datasource.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": "not found"})
	default:
		var ue *openparliament.UpstreamError
		if errors.As(err, &ue) {
			c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
	}
}
