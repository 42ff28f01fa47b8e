package tool

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/moyoez/imgup/types"
)

const DefaultContentType = "application/octet-stream"

// ReadSelectedFile loads a file from disk the way a file picker hands it to a form.
func ReadSelectedFile(filePath string) (types.SelectedFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return types.SelectedFile{}, fmt.Errorf("failed to stat file: %v", err)
	}
	if fileInfo.IsDir() {
		return types.SelectedFile{}, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return types.SelectedFile{}, fmt.Errorf("failed to read file: %v", err)
	}

	return types.SelectedFile{
		Name:        filepath.Base(filePath),
		ContentType: DetectContentType(filePath, data),
		Data:        data,
	}, nil
}

// DetectContentType sniffs data first, then falls back to the extension.
func DetectContentType(filePath string, data []byte) string {
	if len(data) > 0 {
		if mt := mimetype.Detect(data); mt != nil && !mt.Is(DefaultContentType) && !mt.Is("text/plain") {
			return mt.String()
		}
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filePath)); byExt != "" {
		return byExt
	}
	if len(data) > 0 {
		return mimetype.Detect(data).String()
	}
	return DefaultContentType
}
