package receiver

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/imgup/tool"
)

// AcceptedTypes are the part content types the image server stores.
var AcceptedTypes = []string{"image/png", "image/jpeg"}

// UploadController answers POST /api/upload. It checks the form and throws the data away.
type UploadController struct {
	fieldName string
}

func NewUploadController(fieldName string) *UploadController {
	return &UploadController{fieldName: fieldName}
}

func (ctrl *UploadController) HandleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		tool.DefaultLogger.Warnf("Failed to parse multipart form: %v", err)
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Failed to parse form"))
		return
	}

	files := form.File[ctrl.fieldName]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("No files provided"))
		return
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !slices.Contains(AcceptedTypes, contentType) {
			tool.DefaultLogger.Warnf("Rejecting %s: unsupported content type %q", fh.Filename, contentType)
			c.JSON(http.StatusUnsupportedMediaType, tool.FastReturnError("unsupported media type: "+contentType))
			return
		}
		names = append(names, fh.Filename)
	}

	tool.DefaultLogger.Infof("Received %d file(s) under %q (request %s)", len(names), ctrl.fieldName, c.GetHeader("X-Request-Id"))
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(map[string]any{
		"received": len(names),
		"files":    names,
	}))
}
