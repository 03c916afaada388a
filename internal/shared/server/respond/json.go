package respond

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Text writes a plain-text attachment. The filename is quoted and escaped for
// the header; a name that cannot be encoded is left out.
func Text(c *gin.Context, filename, body string) {
	disposition := "attachment"
	if filename != "" {
		if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
			disposition = v
		}
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
