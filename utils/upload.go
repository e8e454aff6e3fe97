package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadDir resolves the directory for stored site photos.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("public", "uploads")
}

// SaveUploadedFile stores a multipart file under UploadDir with a uuid-prefixed
// name and returns the public URL path.
func SaveUploadedFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + "_" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return "/uploads/" + filename, nil
}
