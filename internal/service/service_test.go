package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"crm/internal/auth"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/model"
	"crm/internal/queue"
	"crm/internal/storage"

	"github.com/stretchr/testify/require"
)

const testPassword = "s3cret!"

var dbSeq atomic.Int64

type recordingPublisher struct {
	events []queue.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event queue.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	ctx       context.Context
	repo      model.Repository
	svc       *Service
	publisher *recordingPublisher
	exportDir string
	hash      string

	admin      *entity.DbUser
	gestion    *entity.DbUser
	commercial *entity.DbUser
	support    *entity.DbUser
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	repo, err := model.NewSQLiteRepository(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)))
	require.NoError(t, err)

	env := &testEnv{
		ctx:       ctx,
		repo:      repo,
		publisher: &recordingPublisher{},
		exportDir: t.TempDir(),
	}
	env.svc, err = New(Options{
		Repo:      repo,
		Publisher: env.publisher,
		Archive: func() (storage.Archive, error) {
			return storage.NewLocalArchive(env.exportDir)
		},
		Clock: func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Setup(ctx))

	env.hash, err = auth.HashPassword(testPassword)
	require.NoError(t, err)
	env.admin = env.user(t, "Admin", authz.RoleAdmin)
	env.gestion = env.user(t, "Gest", authz.RoleGestion)
	env.commercial = env.user(t, "Com", authz.RoleCommercial)
	env.support = env.user(t, "Sup", authz.RoleSupport)
	return env
}

// user inserts a user straight into the repository and reloads it with its permissions.
func (e *testEnv) user(t *testing.T, name string, role authz.RoleName) *entity.DbUser {
	t.Helper()
	r, err := e.repo.GetRoleByName(e.ctx, string(role))
	require.NoError(t, err)
	u := &entity.DbUser{
		Name:         name,
		Email:        strings.ToLower(name) + "@epic.test",
		PasswordHash: e.hash,
		RoleID:       r.ID,
	}
	require.NoError(t, e.repo.CreateUser(e.ctx, u))
	loaded, err := e.repo.GetUserByID(e.ctx, u.ID)
	require.NoError(t, err)
	return loaded
}

func (e *testEnv) client(t *testing.T, owner *entity.DbUser, email string) *entity.DbClient {
	t.Helper()
	c, err := e.svc.CreateClient(e.ctx, owner, ClientInput{
		FirstName: "Ada", LastName: "Lovelace", Email: email, Phone: "0102", CompanyName: "Engines",
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) contract(t *testing.T, client *entity.DbClient, signed bool) *entity.DbContract {
	t.Helper()
	c, err := e.svc.CreateContract(e.ctx, e.gestion, ContractInput{
		ClientID: client.ID, TotalAmount: 1000, RemainingAmount: 400, Signed: signed,
	})
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }
