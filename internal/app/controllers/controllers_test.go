package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/views"
	"github.com/yigit/studentportal/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterFormTagNames()
}

func newTestRouter() *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(views.Templates())
	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartRequest builds a multipart POST. files maps field name to file name,
// every file gets the same small body.
func multipartRequest(t *testing.T, target string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func discardLogger() zerolog.Logger {
	return zerolog.Nop()
}

type stubStudents struct {
	records []dto.StudentRecord
	err     error
	got     dto.StudentFilter
}

func (s *stubStudents) ListStudents(_ context.Context, filter dto.StudentFilter) ([]dto.StudentRecord, error) {
	s.got = filter
	return s.records, s.err
}

type stubRegistrar struct {
	terms      []*models.Term
	termsErr   error
	result     *dto.RegistrationResult
	err        error
	form       *dto.StudentRegistrationForm
	picture    *multipart.FileHeader
	notified   bool
	registered int
}

func (s *stubRegistrar) StreamOptions(context.Context) ([]*models.Term, error) {
	return s.terms, s.termsErr
}

func (s *stubRegistrar) Register(_ context.Context, form *dto.StudentRegistrationForm, picture *multipart.FileHeader) (*dto.RegistrationResult, error) {
	s.registered++
	s.form = form
	s.picture = picture
	return s.result, s.err
}

func (s *stubRegistrar) SendNotifications(context.Context, *dto.RegistrationResult, *dto.StudentRegistrationForm) {
	s.notified = true
}

type stubRedirector struct {
	target string
	err    error
	userID int64
}

func (s *stubRedirector) RedirectTarget(_ context.Context, userID int64) (string, error) {
	s.userID = userID
	return s.target, s.err
}

type stubVocabulary struct {
	streams []dto.StreamResponse
	vid     string
	err     error
}

func (s *stubVocabulary) ListVocabulary(_ context.Context, vid string) ([]dto.StreamResponse, error) {
	s.vid = vid
	if s.err != nil {
		return nil, s.err
	}
	return s.streams, nil
}

type stubTermPages struct {
	terms   map[int64]*models.Term
	aliases map[string]string
	err     error
}

func (s *stubTermPages) LoadTerm(_ context.Context, id int64) (*models.Term, error) {
	if s.err != nil {
		return nil, s.err
	}
	term, ok := s.terms[id]
	if !ok {
		return nil, errNotFound
	}
	return term, nil
}

func (s *stubTermPages) GetPathByAlias(_ context.Context, alias string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	path, ok := s.aliases[alias]
	if !ok {
		return "", errNotFound
	}
	return path, nil
}

type stubFiles struct {
	file    *models.File
	err     error
	header  *multipart.FileHeader
	ownerID *int64
}

func (s *stubFiles) SaveTemporary(_ context.Context, header *multipart.FileHeader, ownerID *int64) (*models.File, error) {
	s.header = header
	s.ownerID = ownerID
	return s.file, s.err
}

type stubAuth struct {
	token *dto.TokenResponse
	err   error
}

func (s *stubAuth) Login(context.Context, *dto.LoginRequest) (*dto.TokenResponse, error) {
	return s.token, s.err
}
