//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/gophboard-server/internal/model"
	repo "github.com/dtroode/gophboard-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "gophboard_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/gophboard_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_Board(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.Ping(ctx))

	users := repo.NewUserRepository(conn)
	posts := repo.NewPostRepository(conn)
	files := repo.NewFileRepository(conn)
	sessions := repo.NewSessionRepository(conn)

	owner, err := users.Create(ctx, model.NewUser{
		Name:         "Alice",
		Hobby:        "chess",
		Age:          30,
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	require.NotZero(t, owner.ID)

	t.Run("user_repository", func(t *testing.T) {
		_, err := users.Create(ctx, model.NewUser{Name: "Dup", Email: owner.Email, PasswordHash: "x"})
		require.ErrorIs(t, err, model.ErrEmailTaken)

		creds, err := users.GetCredentialsByEmail(ctx, owner.Email)
		require.NoError(t, err)
		require.Equal(t, owner.ID, creds.UserID)

		byID, err := users.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, owner.Email, byID.Email)

		_, err = users.GetByID(ctx, owner.ID+1000)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("session_repository", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		session := model.Session{
			JTI:       uuid.NewString(),
			UserID:    owner.ID,
			IssuedAt:  now,
			ExpiresAt: now.Add(model.IdentityTTL),
		}
		require.NoError(t, sessions.Create(ctx, session))

		got, err := sessions.GetByJTI(ctx, session.JTI)
		require.NoError(t, err)
		require.Nil(t, got.RevokedAt)

		require.NoError(t, sessions.RevokeByJTI(ctx, session.JTI))
		require.NoError(t, sessions.RevokeByJTI(ctx, session.JTI))

		got, err = sessions.GetByJTI(ctx, session.JTI)
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt)
	})

	t.Run("post_and_file_repository", func(t *testing.T) {
		plain, err := posts.Create(ctx, model.Post{Title: "plain", Content: "no file", OwnerID: owner.ID})
		require.NoError(t, err)

		attached, err := posts.Create(ctx, model.Post{Title: "attached", Content: "with file", OwnerID: owner.ID})
		require.NoError(t, err)

		file, err := files.Create(ctx, model.File{
			PostID:       attached.ID,
			StoredName:   "report1709294400000.pdf",
			OriginalName: "report.pdf",
		})
		require.NoError(t, err)

		_, err = files.Create(ctx, model.File{
			PostID:       attached.ID,
			StoredName:   "other1709294400001.pdf",
			OriginalName: "other.pdf",
		})
		require.Error(t, err)

		got, err := files.GetByID(ctx, file.ID)
		require.NoError(t, err)
		require.Equal(t, "report.pdf", got.OriginalName)

		_, err = files.GetByID(ctx, file.ID+1000)
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = posts.Create(ctx, model.Post{Title: "orphan", OwnerID: owner.ID + 1000})
		require.ErrorIs(t, err, model.ErrNotFound)

		board, err := posts.ListWithOwners(ctx)
		require.NoError(t, err)
		require.Len(t, board, 2)
		require.Equal(t, plain.ID, board[0].ID)
		require.Nil(t, board[0].File)
		require.Equal(t, "Alice", board[1].Owner.Name)
		require.NotNil(t, board[1].File)
		require.Equal(t, file.ID, board[1].File.ID)
	})
}
