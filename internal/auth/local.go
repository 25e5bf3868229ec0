// internal/auth/local.go
package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

// Directory resolves the stored user list for credential matching.
type Directory interface {
	Master(ctx context.Context) (models.MasterData, error)
}

// Authenticate matches identity (email or user id, case-insensitive)
// against the stored directory. Credentials are compared as plain text;
// the directory is a small static list managed by an administrator.
func Authenticate(ctx context.Context, dir Directory, identity, password string) (models.User, error) {
	identity = strings.ToLower(strings.TrimSpace(identity))
	if identity == "" || password == "" {
		return models.User{}, models.ErrUserNotFound
	}
	md, err := dir.Master(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range md.Users {
		if strings.ToLower(u.Email) != identity && strings.ToLower(u.ID) != identity {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}
