package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

func taxonomyRouter(pages *stubTermPages) *gin.Engine {
	controller := NewTaxonomyController(pages, "Student Portal", discardLogger())
	router := newTestRouter()
	router.GET("/taxonomy/term/:id", controller.ShowTerm)
	router.NoRoute(controller.ResolveAlias)
	return router
}

func termPages() *stubTermPages {
	return &stubTermPages{
		terms: map[int64]*models.Term{
			3: {ID: 3, Vocabulary: "student_streams", Name: "Computer Science"},
		},
		aliases: map[string]string{
			"/streams/computer-science": "/taxonomy/term/3",
			"/streams/gone":             "/taxonomy/term/99",
			"/about":                    "/node/1",
		},
	}
}

func TestShowTerm(t *testing.T) {
	w := serve(taxonomyRouter(termPages()), httptest.NewRequest(http.MethodGet, "/taxonomy/term/3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-term-id="3"`)
	assert.Contains(t, w.Body.String(), "<h1>Computer Science</h1>")
}

func TestShowTermNotFound(t *testing.T) {
	router := taxonomyRouter(termPages())

	for _, path := range []string{"/taxonomy/term/99", "/taxonomy/term/abc", "/taxonomy/term/0"} {
		w := serve(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestResolveAlias(t *testing.T) {
	router := taxonomyRouter(termPages())

	w := serve(router, httptest.NewRequest(http.MethodGet, "/streams/computer-science", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-term-id="3"`)

	for _, path := range []string{"/streams/unknown", "/streams/gone", "/about"} {
		w = serve(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w = serve(router, httptest.NewRequest(http.MethodPost, "/streams/computer-science", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveAliasStorageFailure(t *testing.T) {
	pages := termPages()
	pages.err = errors.Join(apperrors.ErrStorageUnavailable, errors.New("refused"))

	w := serve(taxonomyRouter(pages), httptest.NewRequest(http.MethodGet, "/streams/computer-science", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
