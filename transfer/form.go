package transfer

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/moyoez/imgup/tool"
	"github.com/moyoez/imgup/types"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildForm encodes files as multipart/form-data, one part per file under
// fieldName, in the given order. It returns the body and its content type.
func BuildForm(fieldName string, files []types.SelectedFile) ([]byte, string, error) {
	if fieldName == "" {
		return nil, "", fmt.Errorf("field name must not be empty")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		contentType := f.ContentType
		if contentType == "" {
			contentType = tool.DefaultContentType
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(fieldName), quoteEscaper.Replace(f.Name)))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form part for %s: %v", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write form part for %s: %v", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %v", err)
	}
	return body.Bytes(), w.FormDataContentType(), nil
}
