package service

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAcceptsAnyCredentials(t *testing.T) {
	now := time.Date(2025, 12, 3, 2, 0, 0, 0, time.UTC)
	svc := NewSessionService(fixedClock(now))

	session, err := svc.Login(context.Background(), " petani@kebun.id ", "rahasia")
	require.NoError(t, err)

	assert.Equal(t, "petani@kebun.id", session.Email)
	assert.Equal(t, "petani", session.DisplayName)
	assert.Equal(t, "2025-12-03T02:00:00Z", session.LoggedInAt)
}

func TestLoginRejectsBlankFields(t *testing.T) {
	svc := NewSessionService(nil)

	_, err := svc.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "a@b.c", "   ")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Feature: harvest-inventory, Property 40: Mock login never rejects filled-in credentials
func TestProperty_LoginIsMock(t *testing.T) {
	svc := NewSessionService(nil)
	properties := gopter.NewProperties(nil)

	properties.Property("any non-blank email and password log in", prop.ForAll(
		func(user, password string) bool {
			session, err := svc.Login(context.Background(), user+"@example.com", password)
			return err == nil && session.DisplayName == user
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
