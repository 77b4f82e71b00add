package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

func fileRouter(files *stubFiles, handlers ...gin.HandlerFunc) *gin.Engine {
	router := newTestRouter()
	handlers = append(handlers, NewFileController(files, discardLogger()).Upload)
	router.POST("/file/upload", handlers...)
	return router
}

func TestUploadCreatesTemporaryFile(t *testing.T) {
	files := &stubFiles{file: &models.File{
		ID:       12,
		FileName: "me.png",
		FileURL:  "http://localhost:8080/uploads/profile_pictures/a.png",
		MimeType: "image/png",
		FileSize: 8,
		Status:   models.FileStatusTemporary,
	}}

	req := multipartRequest(t, "/file/upload", nil, map[string]string{"files[picture]": "me.png"})
	w := serve(fileRouter(files, withUser(7)), req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"data":{"fid":12,"filename":"me.png","url":"http://localhost:8080/uploads/profile_pictures/a.png","mime":"image/png","size":8}}`, w.Body.String())
	require.NotNil(t, files.ownerID)
	assert.Equal(t, int64(7), *files.ownerID)
	assert.Equal(t, "me.png", files.header.Filename)
}

func TestUploadAnonymousHasNoOwner(t *testing.T) {
	files := &stubFiles{file: &models.File{ID: 1, FileName: "me.png"}}

	req := multipartRequest(t, "/file/upload", nil, map[string]string{"picture": "me.png"})
	w := serve(fileRouter(files), req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, files.ownerID)
}

func TestUploadRejections(t *testing.T) {
	req := multipartRequest(t, "/file/upload", map[string]string{"name": "x"}, nil)
	w := serve(fileRouter(&stubFiles{}), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	files := &stubFiles{err: apperrors.NewCustomError(apperrors.ErrFileExtensionInvalid, "Only files with the following extensions are allowed: png jpg")}
	req = multipartRequest(t, "/file/upload", nil, map[string]string{"picture": "me.exe"})
	w = serve(fileRouter(files), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"picture"`)
}
