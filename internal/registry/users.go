package registry

import (
	"context"
	"strings"

	"github.com/roach88/servicelog/internal/record"
)

// AddUser checks and inserts a user.
func (s *Service) AddUser(ctx context.Context, name, username string) (record.User, error) {
	u := record.User{Name: strings.TrimSpace(name), Username: strings.TrimSpace(username)}
	if err := s.users.Struct(u); err != nil {
		return record.User{}, userError(err)
	}

	id, err := s.store.InsertUser(ctx, u.Name, u.Username)
	if err != nil {
		return record.User{}, err
	}
	u.ID = id
	return u, nil
}

// UpdateUser checks and overwrites a user. An absent id is a no-op.
func (s *Service) UpdateUser(ctx context.Context, id int64, name, username string) (record.User, error) {
	u := record.User{ID: id, Name: strings.TrimSpace(name), Username: strings.TrimSpace(username)}
	if err := s.users.Struct(u); err != nil {
		return record.User{}, userError(err)
	}

	if err := s.store.UpdateUser(ctx, u.ID, u.Name, u.Username); err != nil {
		return record.User{}, err
	}
	return u, nil
}

// Users lists every user ordered by id.
func (s *Service) Users(ctx context.Context) ([]record.User, error) {
	return s.store.ListUsers(ctx)
}

// RemoveUser deletes a user. An absent id is a no-op.
func (s *Service) RemoveUser(ctx context.Context, id int64) error {
	return s.store.DeleteUser(ctx, id)
}
