package repositories

import (
	"github.com/yigit/studentportal/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository   *AccountRepository
	TermRepository      *TermRepository
	PathAliasRepository *PathAliasRepository
	FileRepository      *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		AccountRepository:   NewAccountRepository(database),
		TermRepository:      NewTermRepository(database),
		PathAliasRepository: NewPathAliasRepository(database),
		FileRepository:      NewFileRepository(database),
	}
}
