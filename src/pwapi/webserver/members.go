package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/datasource"
)

type Members struct{ src datasource.Source }

func NewMembers(src datasource.Source) Members { return Members{src: src} }

func (h Members) List(c *gin.Context) {
	limit, offset := pageArgs(c)
	members, err := h.src.Members(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": members})
}

func (h Members) Get(c *gin.Context) {
	id := c.Param("id")
	if !validMemberID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad member identifier"})
		return
	}

	member, err := h.src.Member(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h Members) Votes(c *gin.Context) {
	id := c.Param("id")
	if !validMemberID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad member identifier"})
		return
	}

	ballots, err := h.src.MemberVotes(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": ballots})
}

// validMemberID rejects identifiers that would escape the politician path.
func validMemberID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/?#")
}
