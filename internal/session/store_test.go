package session

import (
	"testing"
	"time"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

func TestStore_CreateGetDelete(t *testing.T) {
	s := NewStore()
	id := s.Create(models.Session{UserID: "USR-1", Expiry: time.Now().Add(time.Hour)})
	if id == "" {
		t.Fatal("empty session id")
	}

	sess, ok := s.Get(id)
	if !ok || sess.UserID != "USR-1" {
		t.Fatalf("Get = %+v, %v", sess, ok)
	}

	s.Delete(id)
	if _, ok := s.Get(id); ok {
		t.Error("session survived delete")
	}
}

func TestStore_ExpiredSessionIsGone(t *testing.T) {
	s := NewStore()
	id := s.Create(models.Session{UserID: "USR-1", Expiry: time.Now().Add(-time.Minute)})
	if _, ok := s.Get(id); ok {
		t.Error("expired session returned")
	}
}

func TestStore_ZeroExpiryNeverExpires(t *testing.T) {
	s := NewStore()
	id := s.Create(models.Session{UserID: "USR-1"})
	if _, ok := s.Get(id); !ok {
		t.Error("session with zero expiry treated as expired")
	}
}

func TestStore_IdsAreUnique(t *testing.T) {
	s := NewStore()
	a := s.Create(models.Session{UserID: "USR-1"})
	b := s.Create(models.Session{UserID: "USR-1"})
	if a == b {
		t.Error("two sessions share an id")
	}
}
