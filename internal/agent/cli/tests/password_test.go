package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-users-service/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-users-service/internal/agent/config"
	serr "github.com/IvanChernomyrdin/go-users-service/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-users-service/internal/shared/models"
)

func passwordServer(t *testing.T, want models.ChangePasswordRequest) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/password", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)

		var req models.ChangePasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, want, req)

		json.NewEncoder(w).Encode(models.MessageResponse{Message: serr.MsgPasswordUpdated})
	}))
}

func TestNewPasswordCmd_Flags(t *testing.T) {
	srv := passwordServer(t, models.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "new"})
	defer srv.Close()

	app := &cli.App{ServerURL: srv.URL, Creds: &config.Credentials{Token: "token-1"}}

	out, err := run(cli.NewPasswordCmd(app), "--current", "old", "--new", "new")
	require.NoError(t, err)
	require.Contains(t, out, serr.MsgPasswordUpdated)
}

func TestNewPasswordCmd_Prompts(t *testing.T) {
	srv := passwordServer(t, models.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "new"})
	defer srv.Close()

	prompts := stubPassword(t, "old", "new")
	app := &cli.App{ServerURL: srv.URL, Creds: &config.Credentials{Token: "token-1"}}

	_, err := run(cli.NewPasswordCmd(app))
	require.NoError(t, err)
	require.Equal(t, []string{"Current password: ", "New password: "}, *prompts)
}

func TestNewPasswordCmd_NotLoggedIn(t *testing.T) {
	app := &cli.App{ServerURL: "http://127.0.0.1:1", Creds: &config.Credentials{}}

	_, err := run(cli.NewPasswordCmd(app), "--current", "a", "--new", "b")
	require.ErrorIs(t, err, cli.ErrNotLoggedIn)
}
