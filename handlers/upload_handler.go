package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ecorecycle_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxImageSize = 5 << 20

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

var uploadFolders = map[string]string{"": "products", "product": "products", "listing": "listings"}

// UploadHandler stores product and listing images on local disk under Dir,
// which is served at /uploads.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{Dir: dir}
}

// UploadImage - POST /api/uploads/image?kind=product|listing
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Image file is required"))
	}

	folder, ok := uploadFolders[strings.ToLower(c.Query("kind"))]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unknown upload kind"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Only .jpg, .jpeg, .png and .webp files are allowed"))
	}
	if file.Size > maxImageSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse("Image must be at most 5MB"))
	}

	dir := filepath.Join(h.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Could not create upload directory %s: %v", dir, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save file"))
	}

	filename := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		log.Printf("Could not save upload %s: %v", filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save file"))
	}

	return success(c, fiber.StatusCreated, fiber.Map{
		"url": fmt.Sprintf("/uploads/%s/%s", folder, filename),
	})
}
