package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/datasource"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

type Bills struct {
	src       datasource.Source
	sanitizer *bluemonday.Policy
}

func NewBills(src datasource.Source) Bills {
	// Bill summaries arrive as HTML from upstream; strip everything except
	// basic formatting before they reach the dashboard.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("p", "br", "strong", "em", "ul", "ol", "li", "blockquote")
	return Bills{src: src, sanitizer: sanitizer}
}

func (h Bills) List(c *gin.Context) {
	limit, offset := pageArgs(c)
	bills, err := h.src.Bills(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	for i := range bills {
		h.clean(&bills[i])
	}
	c.JSON(http.StatusOK, gin.H{"objects": bills})
}

func (h Bills) Get(c *gin.Context) {
	session := c.Param("session")
	number := c.Param("number")
	if session == "" || number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad bill identifier"})
		return
	}

	bill, err := h.src.Bill(c.Request.Context(), session, number)
	if err != nil {
		fail(c, err)
		return
	}
	h.clean(bill)
	c.JSON(http.StatusOK, bill)
}

func (h Bills) clean(b *types.Bill) {
	if b.Summary != "" {
		b.Summary = h.sanitizer.Sanitize(b.Summary)
	}
}
