package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/datasource"
)

type Votes struct{ src datasource.Source }

func NewVotes(src datasource.Source) Votes { return Votes{src: src} }

func (h Votes) List(c *gin.Context) {
	limit, offset := pageArgs(c)
	votes, err := h.src.Votes(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": votes})
}

func (h Votes) Get(c *gin.Context) {
	session := c.Param("session")
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 || session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad vote identifier"})
		return
	}

	vote, err := h.src.Vote(c.Request.Context(), session, number)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vote)
}
