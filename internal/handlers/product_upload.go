package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/middleware"
	"storefront/internal/response"
	"storefront/internal/service"
)

const maxMultipartMemory = 32 << 20

var errMissingImage = errors.New("image file is required")

// parseImageUpload returns the multipart "image" part of the request.
func parseImageUpload(c *gin.Context) (*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, err
	}
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, errMissingImage
	}
	if err != nil {
		return nil, err
	}
	if file.Filename == "" {
		return nil, errMissingImage
	}
	return file, nil
}

func UploadItemImage(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product_item/:id/image"
		itemID, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		file, err := parseImageUpload(c)
		if err != nil {
			respondBadRequest(c, route, err.Error())
			return
		}
		in, err := file.Open()
		if err != nil {
			respondBadRequest(c, route, err.Error())
			return
		}
		defer in.Close()

		zerolog.Ctx(c.Request.Context()).Debug().
			Str("route", route).
			Str("filename", file.Filename).
			Int64("size", file.Size).
			Msg("upload received")

		line, err := svc.UploadItemImage(c.Request.Context(), middleware.UserID(c), itemID, file.Filename, in)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		msg := fmt.Sprintf("Image '%s' has been uploaded successfully.", filepath.Base(line.ImagePath))
		render(c, response.Created(msg, line))
	}
}

func DeleteImageLine(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /image_line/:id"
		id, ok := pathID(c, route, "id")
		if !ok {
			return
		}
		if err := svc.DeleteImageLine(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respondWithError(c, route, err)
			return
		}
		render(c, response.OK(nil).WithMessage("Image has been deleted.").WithoutData())
	}
}
