package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUserValidate(t *testing.T) {
	valid := User{
		ID:       uuid.New(),
		Email:    "learner@example.com",
		Timezone: "Europe/Berlin",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	noID := valid
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrUserIDEmpty, err)
	}

	noZone := valid
	noZone.Timezone = ""
	if err := noZone.Validate(); err != ErrEmptyTimezone {
		t.Errorf("Expected error %v, got %v", ErrEmptyTimezone, err)
	}

	badZone := valid
	badZone.Timezone = "Mars/Olympus_Mons"
	if err := badZone.Validate(); err != ErrInvalidTimezone {
		t.Errorf("Expected error %v, got %v", ErrInvalidTimezone, err)
	}
}

func TestUserLocation(t *testing.T) {
	user := User{ID: uuid.New(), Timezone: "Asia/Tokyo"}

	loc := user.Location()
	if loc.String() != "Asia/Tokyo" {
		t.Errorf("Expected Asia/Tokyo, got %v", loc)
	}

	// An unresolvable zone falls back to UTC rather than failing due-date
	// math on an old row.
	user.Timezone = "Not/A_Zone"
	if got := user.Location(); got != time.UTC {
		t.Errorf("Expected UTC fallback, got %v", got)
	}
}
