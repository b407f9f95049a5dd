package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmoreira/quizforge/internal/client/api"
	"github.com/rmoreira/quizforge/internal/client/auth"
	"github.com/rmoreira/quizforge/internal/client/models"
)

// memStore is an in-memory credentials.Repository.
type memStore struct {
	token string
}

func (m *memStore) Load(ctx context.Context) (string, error)        { return m.token, nil }
func (m *memStore) Save(ctx context.Context, token string) error    { m.token = token; return nil }
func (m *memStore) Delete(ctx context.Context) error                { m.token = ""; return nil }

func newAuthService(t *testing.T, client api.Client, store *memStore) (*AuthService, *auth.Context) {
	t.Helper()
	authCtx, err := auth.NewContext(context.Background(), store)
	require.NoError(t, err)
	return NewAuthService(client, authCtx, testLogger()), authCtx
}

func TestLogin_Success(t *testing.T) {
	client := &fakeClient{
		LoginToken: "tok-1",
		MeIdentity: &models.Identity{Email: "a@b.com", FullName: "Ana"},
	}
	store := &memStore{}
	svc, authCtx := newAuthService(t, client, store)

	res := svc.Login(context.Background(), "a@b.com", "pw")

	require.True(t, res.OK)
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "tok-1", authCtx.Token())
	assert.Equal(t, "tok-1", store.token, "persisted credential equals the in-memory one")
	require.NotNil(t, svc.Identity())
	assert.Equal(t, "a@b.com", svc.Identity().Email)
	assert.Empty(t, svc.Err())
}

func TestLogin_FailureSurfacesBackendDetail(t *testing.T) {
	client := &fakeClient{
		LoginErr: &api.APIError{Status: 401, Detail: "Incorrect credentials"},
	}
	svc, _ := newAuthService(t, client, &memStore{})

	res := svc.Login(context.Background(), "a@b.com", "pw")

	require.False(t, res.OK)
	assert.Equal(t, "Incorrect credentials", res.Err)
	assert.Equal(t, "Incorrect credentials", svc.Err())
	assert.False(t, svc.IsAuthenticated())
}

func TestLogin_TransportFailureUsesGenericMessage(t *testing.T) {
	client := &fakeClient{LoginErr: api.ErrUnavailable}
	svc, _ := newAuthService(t, client, &memStore{})

	res := svc.Login(context.Background(), "a@b.com", "pw")

	require.False(t, res.OK)
	assert.Equal(t, "login failed", res.Err)
}

func TestLogin_FailureLeavesPriorCredentialUntouched(t *testing.T) {
	client := &fakeClient{
		LoginErr: &api.APIError{Status: 400, Detail: "bad request"},
	}
	store := &memStore{token: "previous"}
	svc, authCtx := newAuthService(t, client, store)

	res := svc.Login(context.Background(), "a@b.com", "pw")

	require.False(t, res.OK)
	assert.Equal(t, "previous", authCtx.Token())
	assert.Equal(t, "previous", store.token)
}

func TestLogin_IdentityFailureRoutesThroughLogout(t *testing.T) {
	// The identity refresh is awaited but its outcome does not change the
	// login result; its failure still tears the session down.
	client := &fakeClient{
		LoginToken: "tok-1",
		MeErr:      api.ErrUnavailable,
	}
	store := &memStore{}
	svc, _ := newAuthService(t, client, store)

	res := svc.Login(context.Background(), "a@b.com", "pw")

	require.True(t, res.OK)
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, store.token)
	assert.Nil(t, svc.Identity())
}

func TestRegister_AutoLoginWithSameCredentials(t *testing.T) {
	client := &fakeClient{
		LoginToken: "tok-2",
		MeIdentity: &models.Identity{Email: "new@b.com"},
	}
	svc, _ := newAuthService(t, client, &memStore{})

	res := svc.Register(context.Background(), "new@b.com", "pw", "New User")

	require.True(t, res.OK)
	assert.Equal(t, "new@b.com", client.LastRegisterEmail)
	assert.Equal(t, "New User", client.LastRegisterName)
	assert.Equal(t, 1, client.LoginCalls)
	assert.Equal(t, "new@b.com", client.LastLoginUser)
	assert.Equal(t, "pw", client.LastLoginPass)
	assert.True(t, svc.IsAuthenticated())
}

func TestRegister_FailureSkipsLogin(t *testing.T) {
	client := &fakeClient{
		RegisterErr: &api.APIError{Status: 400, Detail: "Email already registered"},
	}
	svc, _ := newAuthService(t, client, &memStore{})

	res := svc.Register(context.Background(), "new@b.com", "pw", "")

	require.False(t, res.OK)
	assert.Equal(t, "Email already registered", svc.Err())
	assert.Zero(t, client.LoginCalls)
}

func TestFetchIdentity_NoopWhenAnonymous(t *testing.T) {
	client := &fakeClient{MeErr: api.ErrUnavailable}
	svc, _ := newAuthService(t, client, &memStore{})

	svc.FetchIdentity(context.Background())

	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, svc.Err())
}

func TestFetchIdentity_FailureLogsOut(t *testing.T) {
	client := &fakeClient{MeErr: api.ErrUnauthorized}
	store := &memStore{token: "stale"}
	svc, _ := newAuthService(t, client, store)

	require.True(t, svc.IsAuthenticated())
	svc.FetchIdentity(context.Background())

	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, store.token)
}

func TestLogout_Idempotent(t *testing.T) {
	svc, _ := newAuthService(t, &fakeClient{}, &memStore{token: "tok"})

	svc.Logout(context.Background())
	svc.Logout(context.Background())

	assert.False(t, svc.IsAuthenticated())
}

func TestClearError(t *testing.T) {
	client := &fakeClient{LoginErr: api.ErrUnavailable}
	svc, _ := newAuthService(t, client, &memStore{})

	svc.Login(context.Background(), "a@b.com", "pw")
	require.NotEmpty(t, svc.Err())

	svc.ClearError()
	assert.Empty(t, svc.Err())
}
