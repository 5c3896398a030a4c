package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func multipartContext(t *testing.T, field, filename string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "ignored"))
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/product_item/1/image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseImageUpload_PicksImagePart(t *testing.T) {
	file, err := parseImageUpload(multipartContext(t, "image", "front.png"))
	require.NoError(t, err)
	require.Equal(t, "front.png", file.Filename)
	require.EqualValues(t, 4, file.Size)
}

func TestParseImageUpload_MissingImage(t *testing.T) {
	_, err := parseImageUpload(multipartContext(t, "", ""))
	require.ErrorIs(t, err, errMissingImage)

	_, err = parseImageUpload(multipartContext(t, "picture", "front.png"))
	require.ErrorIs(t, err, errMissingImage)
}
