package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mediaapi/internal/model"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
)

// Pinger is the connectivity check the health endpoint depends on.
// *mongo.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db Pinger, svc service.ItemService, store storage.Storage) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload-single", UploadSingle(svc))
	app.Post("/upload-multiple", UploadMultiple(svc))
	app.Post("/delete-item", DeleteItem(svc))
	app.Get("/get-products", GetProducts(svc))
	app.Get("/uploads/:category/:filename", ServeUpload(store))

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})
}

// HealthCheck verifies document database connectivity.
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, readpref.Primary()); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadSingle handles a single image upload (multipart field: image).
// The target is always the products collection.
func UploadSingle(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "IMAGE_REQUIRED", "image file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.UploadSingle(c.UserContext(), toUpload(fh, f), formFields(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadMultiple handles up to ten image uploads (multipart field: images).
// The target collection comes from the "type" query parameter.
func UploadMultiple(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "IMAGES_REQUIRED", "at least one image is required")
		}

		files := form.File["images"]
		if len(files) == 0 {
			return writeError(c, fiber.StatusBadRequest, "IMAGES_REQUIRED", "at least one image is required")
		}

		ups := make([]service.Upload, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()
			ups = append(ups, toUpload(fh, f))
		}

		res, err := svc.UploadMultiple(c.UserContext(), c.Query("type"), ups, formFields(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// deleteItemRequest mirrors the client payload for item deletion.
type deleteItemRequest struct {
	Data struct {
		Type      string   `json:"type"`
		ProductID string   `json:"productId"`
		Images    []string `json:"images"`
	} `json:"data"`
}

// DeleteItem removes an item's stored files and its database record.
func DeleteItem(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteItemRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.DeleteItem(c.UserContext(), req.Data.Type, req.Data.ProductID, req.Data.Images)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetProducts lists every product document.
func GetProducts(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListProducts(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// ServeUpload streams a stored file's bytes. Works for both storage drivers.
func ServeUpload(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := model.Category(c.Params("category"))
		filename := c.Params("filename")

		rc, err := store.Open(c.UserContext(), category, filename)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
			c.Type(ext)
		}
		// fasthttp closes the stream when it implements io.Closer
		return c.SendStream(rc)
	}
}

func toUpload(fh *multipart.FileHeader, f multipart.File) service.Upload {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return service.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}
}

// formFields collects non-file multipart values; they become the
// client-supplied fields of the item document.
func formFields(c *fiber.Ctx) map[string]string {
	fields := map[string]string{}
	if form, err := c.MultipartForm(); err == nil {
		for k, vals := range form.Value {
			if len(vals) > 0 {
				fields[k] = vals[0]
			}
		}
	}
	return fields
}
