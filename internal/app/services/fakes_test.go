package services

import (
	"context"
	"mime/multipart"
	"sort"
	"time"

	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
)

type fakeAccountRepo struct {
	accounts  map[int64]*models.Account
	nextID    int64
	queryErr  error
	createErr error
	loadErr   error
	criteria  []repositories.StudentCriteria
	created   []*models.Account
}

func newFakeAccountRepo(accounts ...*models.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: map[int64]*models.Account{}, nextID: 100}
	for _, a := range accounts {
		repo.accounts[a.ID] = a
	}
	return repo
}

func (r *fakeAccountRepo) QueryStudentIDs(_ context.Context, c repositories.StudentCriteria) ([]int64, error) {
	r.criteria = append(r.criteria, c)
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	ids := []int64{}
	for id, a := range r.accounts {
		if !a.IsActive || !a.HasRole(models.RoleStudent) {
			continue
		}
		if c.StreamID != nil && (a.StreamID == nil || *a.StreamID != *c.StreamID) {
			continue
		}
		if c.JoiningYear != nil && (a.JoiningYear == nil || *a.JoiningYear != *c.JoiningYear) {
			continue
		}
		if c.PassingYear != nil && (a.PassingYear == nil || *a.PassingYear != *c.PassingYear) {
			continue
		}
		if c.Phone != "" && (a.Phone == nil || *a.Phone != c.Phone) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeAccountRepo) LoadMultiple(_ context.Context, ids []int64) ([]*models.Account, error) {
	out := []*models.Account{}
	for _, id := range ids {
		if a, ok := r.accounts[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Load(_ context.Context, id int64) (*models.Account, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if a, ok := r.accounts[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, a *models.Account) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	a.ID = r.nextID
	r.accounts[a.ID] = a
	r.created = append(r.created, a)
	return nil
}

func (r *fakeAccountRepo) GetByNameOrEmail(_ context.Context, login string) (*models.Account, error) {
	for _, a := range r.accounts {
		if a.Name == login || a.Email == login {
			return a, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

type fakeTermRepo struct {
	terms   map[int64]*models.Term
	loadErr error
}

func newFakeTermRepo(terms ...*models.Term) *fakeTermRepo {
	repo := &fakeTermRepo{terms: map[int64]*models.Term{}}
	for _, t := range terms {
		repo.terms[t.ID] = t
	}
	return repo
}

func (r *fakeTermRepo) Load(_ context.Context, id int64) (*models.Term, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if t, ok := r.terms[id]; ok {
		return t, nil
	}
	return nil, apperrors.NewResourceNotFoundError("taxonomy term not found")
}

func (r *fakeTermRepo) LoadMultiple(_ context.Context, ids []int64) (map[int64]*models.Term, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	out := map[int64]*models.Term{}
	for _, id := range ids {
		if t, ok := r.terms[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (r *fakeTermRepo) ListByVocabulary(_ context.Context, vid string) ([]*models.Term, error) {
	out := []*models.Term{}
	for _, t := range r.terms {
		if t.Vocabulary == vid {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTermRepo) Create(_ context.Context, t *models.Term) error {
	t.ID = int64(len(r.terms) + 1)
	r.terms[t.ID] = t
	return nil
}

type fakeAliasRepo struct {
	aliases map[string]string
	err     error
}

func (r *fakeAliasRepo) GetAliasByPath(_ context.Context, path string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if alias, ok := r.aliases[path]; ok {
		return alias, nil
	}
	return "", apperrors.ErrResourceNotFound
}

func (r *fakeAliasRepo) GetPathByAlias(_ context.Context, alias string) (string, error) {
	for path, a := range r.aliases {
		if a == alias {
			return path, nil
		}
	}
	return "", apperrors.ErrResourceNotFound
}

func (r *fakeAliasRepo) Save(_ context.Context, path, alias string) error {
	if r.aliases == nil {
		r.aliases = map[string]string{}
	}
	r.aliases[path] = alias
	return nil
}

type fakeFileRepo struct {
	files   map[int64]*models.File
	nextID  int64
	saveErr error
	saves   int
}

func newFakeFileRepo(files ...*models.File) *fakeFileRepo {
	repo := &fakeFileRepo{files: map[int64]*models.File{}, nextID: 10}
	for _, f := range files {
		repo.files[f.ID] = f
	}
	return repo
}

func (r *fakeFileRepo) Create(_ context.Context, f *models.File) error {
	r.nextID++
	f.ID = r.nextID
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	r.files[f.ID] = f
	return nil
}

func (r *fakeFileRepo) Load(_ context.Context, id int64) (*models.File, error) {
	if f, ok := r.files[id]; ok {
		return f, nil
	}
	return nil, apperrors.ErrFileNotFound
}

func (r *fakeFileRepo) Save(_ context.Context, f *models.File) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.files[f.ID] = f
	return nil
}

func (r *fakeFileRepo) ListExpiredTemporary(_ context.Context, before time.Time, limit uint64) ([]*models.File, error) {
	out := []*models.File{}
	for _, f := range r.files {
		if !f.IsPermanent() && f.UpdatedAt.Before(before) && uint64(len(out)) < limit {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.files[id]; !ok {
		return apperrors.ErrFileNotFound
	}
	delete(r.files, id)
	return nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (s *fakeStorage) SaveFileWithPath(header *multipart.FileHeader, subPath string) (*filestorage.FileInfo, error) {
	path := subPath + "/" + header.Filename
	s.saved = append(s.saved, path)
	return &filestorage.FileInfo{
		Path:     path,
		URL:      "http://localhost/uploads/" + path,
		Filename: header.Filename,
		FileSize: header.Size,
		MimeType: "image/png",
	}, nil
}

func (s *fakeStorage) DeleteFile(path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) GetFullPath(path string) string { return "/tmp/" + path }

type sentMail struct {
	key    string
	to     string
	userID int64
	data   map[string]interface{}
}

type fakeMailer struct {
	sent    []sentMail
	userErr error
}

func (m *fakeMailer) SendUserMail(_ context.Context, to string, userID int64, data map[string]interface{}) error {
	m.sent = append(m.sent, sentMail{key: "user_mail", to: to, userID: userID, data: data})
	return m.userErr
}

func (m *fakeMailer) SendAdminMail(_ context.Context, to string, data map[string]interface{}) error {
	m.sent = append(m.sent, sentMail{key: "admin_mail", to: to, data: data})
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
