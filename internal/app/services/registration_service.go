package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

// RegistrationSuccessMessage is shown on the page after a successful registration
const RegistrationSuccessMessage = "Registration successful."

// illegalChoiceMessage mirrors the platform's message for an unknown select option
const illegalChoiceMessage = "An illegal choice has been detected. Please contact the site administrator."

// pictureInUseMessage is returned when picture_fid names a file that is not a free temporary upload
const pictureInUseMessage = "The file used in the Picture field may not be referenced."

// RegistrationMailer sends the two registration notifications
type RegistrationMailer interface {
	SendUserMail(ctx context.Context, to string, userID int64, userData map[string]interface{}) error
	SendAdminMail(ctx context.Context, to string, userData map[string]interface{}) error
}

// ManagedFiles is the part of the file service registration depends on
type ManagedFiles interface {
	SaveTemporary(ctx context.Context, header *multipart.FileHeader, ownerID *int64) (*models.File, error)
	Load(ctx context.Context, id int64) (*models.File, error)
	SetPermanent(ctx context.Context, file *models.File) (bool, error)
	SetTemporary(ctx context.Context, file *models.File) error
}

// RegistrationConfig holds site settings used by the registration workflow
type RegistrationConfig struct {
	StreamVocabulary string
	SiteMail         string
	LoginPath        string
}

// RegistrationService creates student accounts from the registration form
type RegistrationService struct {
	accountRepo  repositories.IAccountRepository
	termRepo     repositories.ITermRepository
	files        ManagedFiles
	mailer       RegistrationMailer
	config       RegistrationConfig
	hashPassword func(string) (string, error)
	logger       zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	accountRepo repositories.IAccountRepository,
	termRepo repositories.ITermRepository,
	files ManagedFiles,
	mailer RegistrationMailer,
	config RegistrationConfig,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		accountRepo:  accountRepo,
		termRepo:     termRepo,
		files:        files,
		mailer:       mailer,
		config:       config,
		hashPassword: auth.HashPassword,
		logger:       logger,
	}
}

// StreamOptions returns the selectable streams, in vocabulary order
func (s *RegistrationService) StreamOptions(ctx context.Context) ([]*models.Term, error) {
	return s.termRepo.ListByVocabulary(ctx, s.config.StreamVocabulary)
}

// Register validates the stream and picture, then persists the new student account.
// The picture is either an uploaded part or a previously uploaded file id.
func (s *RegistrationService) Register(ctx context.Context, form *dto.StudentRegistrationForm, picture *multipart.FileHeader) (*dto.RegistrationResult, error) {
	if err := s.validateStream(ctx, form.Stream); err != nil {
		return nil, err
	}

	file, err := s.resolvePicture(ctx, form, picture)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	phone := form.MobileNumber
	stream := form.Stream
	joiningYear := form.JoiningYear
	passingYear := form.PassingYear
	account := &models.Account{
		Name:        form.FullName,
		Email:       form.Email,
		Password:    hashed,
		IsActive:    true,
		Roles:       []models.RoleType{models.RoleStudent},
		Phone:       &phone,
		StreamID:    &stream,
		JoiningYear: &joiningYear,
		PassingYear: &passingYear,
	}

	madePermanent := false
	if file != nil {
		changed, err := s.files.SetPermanent(ctx, file)
		if err != nil {
			return nil, err
		}
		madePermanent = changed
		fid := file.ID
		account.PictureFID = &fid
		form.PictureFID = fid
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if madePermanent {
			if revertErr := s.files.SetTemporary(ctx, file); revertErr != nil {
				s.logger.Error().Err(revertErr).Int64("fid", file.ID).Msg("Failed to return picture to temporary status")
			}
		}
		return nil, err
	}

	s.logger.Info().Int64("accountID", account.ID).Str("name", account.Name).Msg("Student registered")

	return &dto.RegistrationResult{
		AccountID:  account.ID,
		PictureFID: account.PictureFID,
		RedirectTo: s.config.LoginPath,
		Message:    RegistrationSuccessMessage,
	}, nil
}

// SendNotifications sends the user and admin mails for a completed registration.
// Failures are logged and not retried; the registration stands.
func (s *RegistrationService) SendNotifications(ctx context.Context, result *dto.RegistrationResult, form *dto.StudentRegistrationForm) {
	values := form.Values()

	if err := s.mailer.SendUserMail(ctx, form.Email, result.AccountID, values); err != nil {
		s.logger.Error().Err(err).Int64("accountID", result.AccountID).Msg("Failed to send user_mail")
	} else {
		result.MailsQueued++
	}

	if err := s.mailer.SendAdminMail(ctx, s.config.SiteMail, values); err != nil {
		s.logger.Error().Err(err).Int64("accountID", result.AccountID).Msg("Failed to send admin_mail")
	} else {
		result.MailsQueued++
	}
}

func (s *RegistrationService) validateStream(ctx context.Context, streamID int64) error {
	term, err := s.termRepo.Load(ctx, streamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewValidationError(map[string]string{"stream": illegalChoiceMessage})
		}
		return err
	}
	if term.Vocabulary != s.config.StreamVocabulary {
		return apperrors.NewValidationError(map[string]string{"stream": illegalChoiceMessage})
	}
	return nil
}

func (s *RegistrationService) resolvePicture(ctx context.Context, form *dto.StudentRegistrationForm, picture *multipart.FileHeader) (*models.File, error) {
	if picture != nil {
		file, err := s.files.SaveTemporary(ctx, picture, nil)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrFileExtensionInvalid, apperrors.ErrFileTooLarge) {
				return nil, apperrors.NewValidationError(map[string]string{"picture": err.Error()})
			}
			return nil, err
		}
		return file, nil
	}

	if form.PictureFID <= 0 {
		return nil, nil
	}

	file, err := s.files.Load(ctx, form.PictureFID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFileNotFound) {
			s.logger.Warn().Int64("fid", form.PictureFID).Msg("Picture file not found, registering without it")
			form.PictureFID = 0
			return nil, nil
		}
		return nil, err
	}
	if file.IsPermanent() || file.OwnerID != nil {
		s.logger.Warn().Int64("fid", file.ID).Msg("Rejected picture file that is already in use")
		return nil, apperrors.NewValidationError(map[string]string{"picture": pictureInUseMessage})
	}
	return file, nil
}
