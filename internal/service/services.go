package service

import (
	"github.com/deppfellow/books-api/internal/repository"
	"github.com/deppfellow/books-api/internal/server"
)

type Services struct {
	Books *BookService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Books: NewBookService(s, repos.Books),
	}
}
