package handler

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"socialnet/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errBadImageType = errors.New("invalid image file type")

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// saveUploadedImage stores an uploaded image under the configured upload
// directory and returns the web path it will be served from. Filenames are
// prefixed with a fresh UUID so uploads never collide.
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errBadImageType
	}

	name := uuid.New().String() + "_" + filepath.Base(file.Filename)
	dir := filepath.Join(config.AppConfig.UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return "/static/uploads/" + subdir + "/" + name, nil
}
