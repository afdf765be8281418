package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

const avatarFolder = "proffinder_avatars"

type UploadHandler struct {
	CloudinaryURL string
}

func NewUploadHandler(cloudinaryURL string) *UploadHandler {
	return &UploadHandler{CloudinaryURL: cloudinaryURL}
}

// GenerateUploadSignature creates a secure signature so the frontend
// can upload an avatar image directly to Cloudinary.
func (h *UploadHandler) GenerateUploadSignature(c *fiber.Ctx) error {
	if h.CloudinaryURL == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Uploads are not configured"})
	}

	cld, err := cloudinary.NewFromURL(h.CloudinaryURL)
	if err != nil {
		return serverError(c, err)
	}

	parsedURL, err := url.Parse(h.CloudinaryURL)
	if err != nil {
		return serverError(c, err)
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: avatarFolder,
	})
	if err != nil {
		return serverError(c, err)
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    avatarFolder,
	})
}
