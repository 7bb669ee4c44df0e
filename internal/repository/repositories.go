package repository

import (
	"github.com/deppfellow/books-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Books BookRepository
}

// NewRepositories builds the repositories over the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Books: NewMongoBookRepository(s.DB.Collection(s.Config.Database.Collection)),
	}
}
