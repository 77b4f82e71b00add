package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashSurvivesRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/submit", func(c *gin.Context) {
		Add(c, TypeStatus, "Registration successful.")
		c.Redirect(http.StatusSeeOther, "/next")
	})
	router.GET("/next", func(c *gin.Context) {
		c.JSON(http.StatusOK, Pop(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/next", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.JSONEq(t, `[{"type":"status","text":"Registration successful."}]`, w.Body.String())

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestPopWithoutMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, Pop(c))
	assert.Empty(t, w.Result().Cookies())
}

func TestPopIgnoresGarbageCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})

	assert.Empty(t, Pop(c))
}
