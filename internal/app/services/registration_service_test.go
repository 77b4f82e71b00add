package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

type registrationFixture struct {
	accounts *fakeAccountRepo
	terms    *fakeTermRepo
	fileRepo *fakeFileRepo
	storage  *fakeStorage
	mailer   *fakeMailer
	svc      *RegistrationService
}

func newRegistrationFixture(files ...*models.File) *registrationFixture {
	f := &registrationFixture{
		accounts: newFakeAccountRepo(),
		terms: newFakeTermRepo(
			&models.Term{ID: 3, Vocabulary: "student_streams", Name: "Computer Science"},
			&models.Term{ID: 8, Vocabulary: "tags", Name: "Not a stream"},
		),
		fileRepo: newFakeFileRepo(files...),
		storage:  &fakeStorage{},
		mailer:   &fakeMailer{},
	}
	fileSvc := NewFileService(f.fileRepo, f.storage, FileConfig{
		UploadLocation:    "profile_pictures",
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif"},
		MaxUploadSize:     2560000,
	}, zerolog.Nop())
	f.svc = NewRegistrationService(f.accounts, f.terms, fileSvc, f.mailer, RegistrationConfig{
		StreamVocabulary: "student_streams",
		SiteMail:         "admin@example.edu",
		LoginPath:        "/user/login",
	}, zerolog.Nop())
	f.svc.hashPassword = func(p string) (string, error) { return "hashed:" + p, nil }
	return f
}

func validForm() *dto.StudentRegistrationForm {
	return &dto.StudentRegistrationForm{
		FullName:     "Jane Doe",
		Email:        "jane@example.edu",
		Password:     "s3cret",
		MobileNumber: "555-0100",
		Stream:       3,
		JoiningYear:  2023,
		PassingYear:  2027,
	}
}

func TestRegisterWithUploadedPicture(t *testing.T) {
	f := newRegistrationFixture()
	form := validForm()

	result, err := f.svc.Register(context.Background(), form, &multipart.FileHeader{Filename: "me.png", Size: 2048})
	require.NoError(t, err)

	require.Len(t, f.accounts.created, 1)
	account := f.accounts.created[0]
	assert.Equal(t, "Jane Doe", account.Name)
	assert.Equal(t, "hashed:s3cret", account.Password)
	assert.True(t, account.IsActive)
	assert.Equal(t, []models.RoleType{models.RoleStudent}, account.Roles)
	assert.Equal(t, int64(3), *account.StreamID)
	assert.Equal(t, 2023, *account.JoiningYear)
	assert.Equal(t, 2027, *account.PassingYear)
	assert.Equal(t, "555-0100", *account.Phone)

	require.NotNil(t, account.PictureFID)
	file := f.fileRepo.files[*account.PictureFID]
	require.NotNil(t, file)
	assert.True(t, file.IsPermanent())
	assert.Equal(t, []string{"profile_pictures/me.png"}, f.storage.saved)

	assert.Equal(t, account.ID, result.AccountID)
	assert.Equal(t, "/user/login", result.RedirectTo)
	assert.Equal(t, "Registration successful.", result.Message)
	assert.Empty(t, f.mailer.sent)
}

func TestRegisterWithPreviouslyUploadedFile(t *testing.T) {
	f := newRegistrationFixture(&models.File{ID: 5, URI: "profile_pictures/a.png", Status: models.FileStatusTemporary})
	form := validForm()
	form.PictureFID = 5

	_, err := f.svc.Register(context.Background(), form, nil)
	require.NoError(t, err)

	assert.True(t, f.fileRepo.files[5].IsPermanent())
	assert.Equal(t, int64(5), *f.accounts.created[0].PictureFID)
}

func TestRegisterSkipsMissingPictureFile(t *testing.T) {
	f := newRegistrationFixture()
	form := validForm()
	form.PictureFID = 404

	_, err := f.svc.Register(context.Background(), form, nil)
	require.NoError(t, err)

	assert.Nil(t, f.accounts.created[0].PictureFID)
	assert.Zero(t, form.PictureFID)
}

func TestRegisterWithoutPicture(t *testing.T) {
	f := newRegistrationFixture()

	_, err := f.svc.Register(context.Background(), validForm(), nil)
	require.NoError(t, err)

	assert.Nil(t, f.accounts.created[0].PictureFID)
	assert.Empty(t, f.storage.saved)
}

func TestRegisterRejectsBadPicture(t *testing.T) {
	tests := []struct {
		name   string
		header *multipart.FileHeader
	}{
		{name: "extension", header: &multipart.FileHeader{Filename: "me.bmp", Size: 10}},
		{name: "size", header: &multipart.FileHeader{Filename: "me.png", Size: 2560001}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture()

			_, err := f.svc.Register(context.Background(), validForm(), tt.header)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Contains(t, apperrors.FieldErrors(err), "picture")
			assert.Empty(t, f.accounts.created)
			assert.Empty(t, f.storage.saved)
		})
	}
}

func TestRegisterRejectsStreamOutsideVocabulary(t *testing.T) {
	for _, stream := range []int64{8, 99} {
		f := newRegistrationFixture()
		form := validForm()
		form.Stream = stream

		_, err := f.svc.Register(context.Background(), form, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, illegalChoiceMessage, apperrors.FieldErrors(err)["stream"])
		assert.Empty(t, f.accounts.created)
	}
}

func TestRegisterDuplicateEmailReturnsPictureToTemporary(t *testing.T) {
	f := newRegistrationFixture(&models.File{ID: 5, Status: models.FileStatusTemporary})
	f.accounts.createErr = apperrors.ErrEmailAlreadyExists
	form := validForm()
	form.PictureFID = 5

	_, err := f.svc.Register(context.Background(), form, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.False(t, f.fileRepo.files[5].IsPermanent())
}

func TestRegisterRejectsPictureFileInUse(t *testing.T) {
	tests := []struct {
		name      string
		file      *models.File
		createErr error
	}{
		{
			name:      "permanent file with failing create",
			file:      &models.File{ID: 5, URI: "profile_pictures/other.png", Status: models.FileStatusPermanent, OwnerID: int64Ptr(7), UpdatedAt: time.Now().Add(-24 * time.Hour)},
			createErr: apperrors.ErrEmailAlreadyExists,
		},
		{
			name: "permanent file",
			file: &models.File{ID: 5, URI: "profile_pictures/other.png", Status: models.FileStatusPermanent, OwnerID: int64Ptr(7), UpdatedAt: time.Now().Add(-24 * time.Hour)},
		},
		{
			name: "owned temporary file",
			file: &models.File{ID: 5, URI: "profile_pictures/other.png", Status: models.FileStatusTemporary, OwnerID: int64Ptr(7), UpdatedAt: time.Now()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture(tt.file)
			f.accounts.createErr = tt.createErr
			status := tt.file.Status
			form := validForm()
			form.PictureFID = 5

			_, err := f.svc.Register(context.Background(), form, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, pictureInUseMessage, apperrors.FieldErrors(err)["picture"])
			assert.Empty(t, f.accounts.created)
			assert.Equal(t, status, f.fileRepo.files[5].Status)
			assert.Equal(t, int64(7), *f.fileRepo.files[5].OwnerID)
		})
	}
}

func TestRegisterFailureKeepsOtherPermanentFiles(t *testing.T) {
	other := &models.File{ID: 5, URI: "profile_pictures/other.png", Status: models.FileStatusPermanent, OwnerID: int64Ptr(7), UpdatedAt: time.Now().Add(-24 * time.Hour)}
	f := newRegistrationFixture(other)
	f.accounts.createErr = apperrors.ErrEmailAlreadyExists
	form := validForm()
	form.PictureFID = 5

	_, err := f.svc.Register(context.Background(), form, nil)
	require.Error(t, err)
	assert.True(t, f.fileRepo.files[5].IsPermanent())

	fileSvc := NewFileService(f.fileRepo, f.storage, FileConfig{UploadLocation: "profile_pictures"}, zerolog.Nop())
	removed, err := fileSvc.DeleteExpiredTemporary(context.Background(), time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Empty(t, f.storage.deleted)
}

func TestSendNotifications(t *testing.T) {
	f := newRegistrationFixture()
	form := validForm()
	result := &dto.RegistrationResult{AccountID: 101}

	f.svc.SendNotifications(context.Background(), result, form)

	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, "user_mail", f.mailer.sent[0].key)
	assert.Equal(t, "jane@example.edu", f.mailer.sent[0].to)
	assert.Equal(t, int64(101), f.mailer.sent[0].userID)
	assert.Equal(t, "admin_mail", f.mailer.sent[1].key)
	assert.Equal(t, "admin@example.edu", f.mailer.sent[1].to)

	for _, m := range f.mailer.sent {
		assert.NotContains(t, m.data, "password")
		assert.Equal(t, "Jane Doe", m.data["full_name"])
	}
	assert.Equal(t, 2, result.MailsQueued)
}

func TestSendNotificationsContinuesAfterMailFailure(t *testing.T) {
	f := newRegistrationFixture()
	f.mailer.userErr = errors.New("smtp down")
	result := &dto.RegistrationResult{AccountID: 101}

	f.svc.SendNotifications(context.Background(), result, validForm())

	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, 1, result.MailsQueued)
}

func TestStreamOptions(t *testing.T) {
	f := newRegistrationFixture()

	terms, err := f.svc.StreamOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "Computer Science", terms[0].Name)
}
