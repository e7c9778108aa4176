package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

type MediaController struct {
	service *services.MediaService
}

func NewMediaController(service *services.MediaService) *MediaController {
	return &MediaController{service: service}
}

// Upload serves POST /media with a multipart "file" field.
func (mc *MediaController) Upload(c *ctx.Context) {
	limit := config.MediaMaxBytes()
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, limit)

	file, header, err := c.R.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Error(http.StatusRequestEntityTooLarge, "File exceeds the upload limit")
			return
		}
		c.ValidationError(map[string]string{"file": "The file field is required."})
		return
	}
	defer file.Close()

	stored, err := mc.service.Store(c.Context(), header.Filename, file, header.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(stored)
}

// Show streams a stored object. It serves /media/* and /videos/*.
func (mc *MediaController) Show(c *ctx.Context) {
	obj, err := mc.service.Open(c.Context(), c.Param("*"))
	if err != nil {
		fail(c, err)
		return
	}
	defer obj.Close()

	if obj.ContentType != "" {
		c.SetHeader("Content-Type", obj.ContentType)
	}
	if obj.Size >= 0 {
		c.SetHeader("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	c.W.WriteHeader(http.StatusOK)
	if _, err := io.Copy(c.W, obj); err != nil {
		logger.WithCtx(c.Context()).Warn("media: stream interrupted", "error", err)
	}
}
