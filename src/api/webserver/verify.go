package webserver

import (
	"context"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/trustmesh/newsverify/src/verifier"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

type Verify struct {
	pipe      *verifier.Pipeline
	sanitizer *bluemonday.Policy
	timeout   time.Duration
}

func NewVerify(pipe *verifier.Pipeline, timeoutSecs int) Verify {
	if timeoutSecs <= 0 {
		timeoutSecs = 180
	}
	return Verify{
		pipe: pipe,
		// Submitted article text is treated as plain text; strip all markup.
		sanitizer: bluemonday.StrictPolicy(),
		timeout:   time.Duration(timeoutSecs) * time.Second,
	}
}

func (h Verify) Create(c *gin.Context) {
	var req struct {
		ImageText string `json:"Imagetext" binding:"max=4000"`
		Text      string `json:"Text" binding:"required,min=1,max=20000"`
		Link      string `json:"Link" binding:"omitempty,url,max=512"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	req.Text = h.sanitizer.Sanitize(req.Text)
	req.ImageText = h.sanitizer.Sanitize(req.ImageText)

	if !utf8.ValidString(req.Text) || !utf8.ValidString(req.ImageText) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "text is empty after sanitization"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.pipe.Run(ctx, types.NewsInput{
		ImageText: req.ImageText,
		Text:      req.Text,
		Link:      req.Link,
	})
	if err != nil {
		// The result is the safe default; the error is observability only.
		log.Printf("verify: request %v degraded: %v", c.GetString("request_id"), err)
	}

	c.JSON(http.StatusOK, result)
}
