package api

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"recipehub/internal/platform/gemini"
)

const imageWidth = 800

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// UploadImage stores a resized photo for a recipe and points the recipe at it.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("get form err: %s", err.Error()))
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		c.String(http.StatusBadRequest, "Invalid file type. Only JPEG, JPG, and PNG images are allowed.")
		return
	}

	src, err := file.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("open file err: %s", err.Error()))
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("read image err: %s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	slug := c.Param("slug")
	r, err := h.RecipeStore.GetRecipeBySlug(ctx, slug)
	if err != nil {
		h.storeError(c, "query", err)
		return
	}
	if r == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	imageHash := gemini.GenerateImageHash(imageData)
	fileName, err := saveImage(h.ImagesDir, imageData, imageHash, extension)
	if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("failed to save image: %s", err.Error()))
		return
	}
	imageURL := "/images/" + fileName

	updated, err := h.RecipeStore.UpdateImageURL(ctx, slug, imageURL)
	if err != nil {
		h.storeError(c, "update", err)
		return
	}
	if !updated {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	h.logger.Info("stored recipe image", zap.String("slug", slug), zap.String("image_hash", imageHash))
	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}

// saveImage decodes, resizes to imageWidth and re-encodes the image in dir,
// named by its hash. It returns the file name.
func saveImage(dir string, imageData []byte, imageHash, extension string) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	img = resize.Resize(imageWidth, 0, img, resize.Lanczos3)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	fileName := imageHash + extension
	out, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer out.Close()

	switch extension {
	case ".jpeg", ".jpg":
		err = jpeg.Encode(out, img, nil)
	case ".png":
		err = png.Encode(out, img)
	default:
		return "", fmt.Errorf("unsupported image format: %s", extension)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return fileName, nil
}
