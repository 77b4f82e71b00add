package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/db"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/dberrors"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

const (
	usersEmailConstraint = "users_email_key"
	usersNameConstraint  = "users_name_key"
)

// StudentCriteria narrows the student query. Nil pointers and an empty phone are not applied.
type StudentCriteria struct {
	StreamID    *int64
	JoiningYear *int
	PassingYear *int
	Phone       string
}

// IAccountRepository defines the account storage operations
type IAccountRepository interface {
	// QueryStudentIDs returns ids of active accounts holding the student role that match criteria.
	QueryStudentIDs(ctx context.Context, criteria StudentCriteria) ([]int64, error)
	// LoadMultiple loads accounts in the order of ids; unknown ids are skipped.
	LoadMultiple(ctx context.Context, ids []int64) ([]*models.Account, error)
	Load(ctx context.Context, id int64) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	GetByNameOrEmail(ctx context.Context, login string) (*models.Account, error)
}

// AccountRepository handles account database operations
type AccountRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(database *db.PostgresDB) *AccountRepository {
	return &AccountRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var accountColumns = []string{
	"u.id", "u.name", "u.email", "u.password", "u.is_active", "u.phone", "u.stream_id",
	"u.joining_year", "u.passing_year", "u.picture_fid", "u.created_at", "u.updated_at",
	"COALESCE(array_agg(ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}') AS roles",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	account := &models.Account{}
	var roles []string
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.Password, &account.IsActive,
		&account.Phone, &account.StreamID, &account.JoiningYear, &account.PassingYear,
		&account.PictureFID, &account.CreatedAt, &account.UpdatedAt, &roles,
	)
	if err != nil {
		return nil, err
	}
	account.Roles = make([]models.RoleType, 0, len(roles))
	for _, role := range roles {
		account.Roles = append(account.Roles, models.RoleType(role))
	}
	return account, nil
}

func (r *AccountRepository) selectAccounts() squirrel.SelectBuilder {
	return r.sb.Select(accountColumns...).
		From("users u").
		LeftJoin("user_roles ur ON ur.user_id = u.id").
		GroupBy("u.id")
}

// buildStudentQuery builds the id query of the student list
func (r *AccountRepository) buildStudentQuery(criteria StudentCriteria) squirrel.SelectBuilder {
	query := r.sb.Select("u.id").
		From("users u").
		Join("user_roles ur ON ur.user_id = u.id").
		Where(squirrel.Eq{"u.is_active": true}).
		Where(squirrel.Eq{"ur.role": string(models.RoleStudent)})

	if criteria.StreamID != nil {
		query = query.Where(squirrel.Eq{"u.stream_id": *criteria.StreamID})
	}
	if criteria.JoiningYear != nil {
		query = query.Where(squirrel.Eq{"u.joining_year": *criteria.JoiningYear})
	}
	if criteria.PassingYear != nil {
		query = query.Where(squirrel.Eq{"u.passing_year": *criteria.PassingYear})
	}
	if criteria.Phone != "" {
		query = query.Where(squirrel.Eq{"u.phone": criteria.Phone})
	}

	return query.OrderBy("u.id ASC")
}

// QueryStudentIDs runs the student list query
func (r *AccountRepository) QueryStudentIDs(ctx context.Context, criteria StudentCriteria) ([]int64, error) {
	sql, args, err := r.buildStudentQuery(criteria).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student query SQL")
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student query")
		return nil, dberrors.Classify(fmt.Errorf("error querying students: %w", err))
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning student id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, dberrors.Classify(fmt.Errorf("error iterating student rows: %w", err))
	}

	return ids, nil
}

// LoadMultiple loads the accounts with the given ids
func (r *AccountRepository) LoadMultiple(ctx context.Context, ids []int64) ([]*models.Account, error) {
	if len(ids) == 0 {
		return []*models.Account{}, nil
	}

	sql, args, err := r.selectAccounts().Where(squirrel.Eq{"u.id": ids}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building load accounts SQL")
		return nil, fmt.Errorf("failed to build load accounts query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("count", len(ids)).Msg("Error loading accounts")
		return nil, dberrors.Classify(fmt.Errorf("error loading accounts: %w", err))
	}
	defer rows.Close()

	byID := make(map[int64]*models.Account, len(ids))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning account row: %w", err)
		}
		byID[account.ID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(fmt.Errorf("error iterating account rows: %w", err))
	}

	accounts := make([]*models.Account, 0, len(byID))
	for _, id := range ids {
		if account, ok := byID[id]; ok {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// Load loads a single account
func (r *AccountRepository) Load(ctx context.Context, id int64) (*models.Account, error) {
	sql, args, err := r.selectAccounts().Where(squirrel.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load account query: %w", err)
	}
	return r.loadOne(ctx, sql, args)
}

// GetByNameOrEmail finds an account by its name or, case-insensitively, its email
func (r *AccountRepository) GetByNameOrEmail(ctx context.Context, login string) (*models.Account, error) {
	sql, args, err := r.selectAccounts().
		Where(squirrel.Or{
			squirrel.Eq{"u.name": login},
			squirrel.Expr("LOWER(u.email) = LOWER(?)", login),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account lookup query: %w", err)
	}
	return r.loadOne(ctx, sql, args)
}

func (r *AccountRepository) loadOne(ctx context.Context, sql string, args []interface{}) (*models.Account, error) {
	account, err := scanAccount(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		logger.Error().Err(err).Msg("Error loading account")
		return nil, dberrors.Classify(fmt.Errorf("error loading account: %w", err))
	}
	return account, nil
}

// Create stores the account and its roles in one transaction
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	insertSQL, insertArgs, err := r.sb.Insert("users").
		Columns("name", "email", "password", "is_active", "phone", "stream_id",
			"joining_year", "passing_year", "picture_fid").
		Values(account.Name, account.Email, account.Password, account.IsActive, account.Phone,
			account.StreamID, account.JoiningYear, account.PassingYear, account.PictureFID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create account query: %w", err)
	}

	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(
			&account.ID, &account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return err
		}

		if len(account.Roles) == 0 {
			return nil
		}
		roles := r.sb.Insert("user_roles").Columns("user_id", "role")
		for _, role := range account.Roles {
			roles = roles.Values(account.ID, string(role))
		}
		rolesSQL, rolesArgs, err := roles.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build account roles query: %w", err)
		}
		_, err = tx.Exec(ctx, rolesSQL, rolesArgs...)
		return err
	})
	if err != nil {
		account.ID = 0
		switch {
		case dberrors.IsDuplicateConstraintError(err, usersEmailConstraint):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, usersNameConstraint):
			return apperrors.ErrNameAlreadyExists
		}
		logger.Error().Err(err).Str("name", account.Name).Msg("Error creating account")
		return dberrors.Classify(fmt.Errorf("error creating account: %w", err))
	}

	return nil
}
