package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

type staticDirectory struct {
	md models.MasterData
}

func (d staticDirectory) Master(context.Context) (models.MasterData, error) {
	return d.md, nil
}

func testDirectory() staticDirectory {
	return staticDirectory{md: models.MasterData{
		Users: []models.User{
			{ID: "USR-1", Name: "Sara", Email: "sara@plant.example", Password: "s3cret", RoleID: "ROLE-1"},
			{ID: "USR-2", Name: "Omar", Email: "omar@plant.example", Password: "hunter2", RoleID: "ROLE-2"},
		},
	}}
}

func TestAuthenticate_ByEmailCaseInsensitive(t *testing.T) {
	u, err := Authenticate(context.Background(), testDirectory(), "SARA@Plant.Example", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != "USR-1" {
		t.Errorf("user = %s, want USR-1", u.ID)
	}
}

func TestAuthenticate_ByUserID(t *testing.T) {
	u, err := Authenticate(context.Background(), testDirectory(), "usr-2", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != "USR-2" {
		t.Errorf("user = %s, want USR-2", u.ID)
	}
}

func TestAuthenticate_Failures(t *testing.T) {
	cases := []struct {
		name               string
		identity, password string
	}{
		{"wrong password", "sara@plant.example", "nope"},
		{"unknown identity", "ghost@plant.example", "s3cret"},
		{"empty identity", "", "s3cret"},
		{"empty password", "sara@plant.example", ""},
		{"password of another user", "sara@plant.example", "hunter2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Authenticate(context.Background(), testDirectory(), tc.identity, tc.password)
			if !errors.Is(err, models.ErrUserNotFound) {
				t.Errorf("err = %v, want ErrUserNotFound", err)
			}
		})
	}
}
