package authenticator_test

import (
	"testing"
	"time"

	"github.com/claimex/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type tokenObj struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, tokenObj{ID: "user1", Email: "a@b.c"})
	require.NoError(t, err)

	var obj tokenObj
	err = engine.Verify(token, &obj)
	require.NoError(t, err)
	require.Equal(t, tokenObj{ID: "user1", Email: "a@b.c"}, obj)
}

func TestJWTExpired(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(-time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, engine.Verify(token, &msg))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, authenticator.NewTokenEngine("other").Verify(token, &msg))
}
