package routes

import (
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"kioskmart/apperr"
)

const thumbnailWidth = 480

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return h.respondError(c, apperr.Validation("failed to get uploaded file"))
	}
	url, thumb, err := h.saveUpload(c, file)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"url": url, "thumbnailUrl": thumb})
}

func (h *Handler) uploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return h.respondError(c, apperr.Validation("failed to parse multipart form"))
	}
	files := form.File["images"]
	if len(files) == 0 {
		return h.respondError(c, apperr.Validation("no images provided"))
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, _, err := h.saveUpload(c, file)
		if err != nil {
			return h.respondError(c, err)
		}
		urls = append(urls, url)
	}
	return c.JSON(fiber.Map{"urls": urls})
}

// saveUpload stores the file under a uuid name and returns its public URL
// plus a thumbnail URL when one could be generated. Thumbnail failures are
// logged, not fatal: the original upload already succeeded.
func (h *Handler) saveUpload(c *fiber.Ctx, file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", "", apperr.Validation("unsupported file type %q", ext)
	}

	filename := uuid.New().String() + ext
	destination := filepath.Join(h.Config.UploadsDir, filename)
	if err := c.SaveFile(file, destination); err != nil {
		return "", "", apperr.Internal(err)
	}

	thumbURL := ""
	if thumbName, err := h.makeThumbnail(destination, ext); err != nil {
		slog.Warn("thumbnail generation failed", "file", filename, "error", err)
	} else if thumbName != "" {
		thumbURL = "/uploads/" + thumbName
	}
	return "/uploads/" + filename, thumbURL, nil
}

// makeThumbnail writes a width-capped copy next to the original. Only jpeg
// and png are decodable here; other formats are served as-is.
func (h *Handler) makeThumbnail(path, ext string) (string, error) {
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", nil
	}

	source, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer source.Close()

	img, _, err := image.Decode(source)
	if err != nil {
		return "", err
	}
	if img.Bounds().Dx() <= thumbnailWidth {
		return "", nil
	}

	thumb := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	thumbName := base + "_thumb" + ext
	out, err := os.Create(filepath.Join(filepath.Dir(path), thumbName))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if ext == ".png" {
		err = png.Encode(out, thumb)
	} else {
		err = jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", err
	}
	return thumbName, nil
}
