package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/helpers"
)

// StudentService serves the filtered student list
type StudentService struct {
	accountRepo repositories.IAccountRepository
	termRepo    repositories.ITermRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(accountRepo repositories.IAccountRepository, termRepo repositories.ITermRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		accountRepo: accountRepo,
		termRepo:    termRepo,
		logger:      logger,
	}
}

// ListStudents returns active students matching every supplied filter
func (s *StudentService) ListStudents(ctx context.Context, filter dto.StudentFilter) ([]dto.StudentRecord, error) {
	criteria, err := toCriteria(filter)
	if err != nil {
		return nil, err
	}

	ids, err := s.accountRepo.QueryStudentIDs(ctx, criteria)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.LoadMultiple(ctx, ids)
	if err != nil {
		return nil, err
	}

	streamIDs := make([]int64, 0, len(accounts))
	seen := make(map[int64]bool)
	for _, account := range accounts {
		if account.StreamID != nil && !seen[*account.StreamID] {
			seen[*account.StreamID] = true
			streamIDs = append(streamIDs, *account.StreamID)
		}
	}

	terms, err := s.termRepo.LoadMultiple(ctx, streamIDs)
	if err != nil {
		return nil, err
	}

	records := make([]dto.StudentRecord, 0, len(accounts))
	for _, account := range accounts {
		record := dto.StudentRecord{
			Name:        account.Name,
			Email:       account.Email,
			JoiningYear: helpers.NullableIntString(account.JoiningYear),
			PassingYear: helpers.NullableIntString(account.PassingYear),
			UsersPhone:  helpers.NullableString(account.Phone),
		}
		if account.StreamID != nil {
			if term, ok := terms[*account.StreamID]; ok {
				label := term.Label()
				record.StudentStream = &label
			}
		}
		records = append(records, record)
	}

	s.logger.Debug().Int("count", len(records)).Interface("filter", filter).Msg("Student list served")
	return records, nil
}

// toCriteria converts query-string filters. Empty and "0" values are skipped.
func toCriteria(filter dto.StudentFilter) (repositories.StudentCriteria, error) {
	var criteria repositories.StudentCriteria
	invalid := map[string]string{}

	streamID, err := helpers.ParseOptionalInt64(filter.Stream)
	if err != nil {
		invalid["stream"] = "stream must be an integer"
	}
	criteria.StreamID = streamID

	joiningYear, err := helpers.ParseOptionalInt(filter.JoiningYear)
	if err != nil {
		invalid["joining_year"] = "joining_year must be an integer"
	}
	criteria.JoiningYear = joiningYear

	passingYear, err := helpers.ParseOptionalInt(filter.PassingYear)
	if err != nil {
		invalid["passing_year"] = "passing_year must be an integer"
	}
	criteria.PassingYear = passingYear

	if filter.UsersPhone != "0" {
		criteria.Phone = filter.UsersPhone
	}

	if len(invalid) > 0 {
		return repositories.StudentCriteria{}, apperrors.NewValidationError(invalid)
	}
	return criteria, nil
}
