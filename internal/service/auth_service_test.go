package service

import (
	"context"
	"errors"
	"testing"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/config"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── In-memory UsuarioRepository ──────────────────────────────────────────────

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	for _, existente := range r.usuarios {
		if existente.Username == u.Username {
			return errors.New("username duplicado")
		}
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *fakeUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("not found")
	}
	u.Activo = false
	return nil
}

func (r *fakeUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("not found")
	}
	u.Activo = true
	return nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(t *testing.T, repo *fakeUsuarioRepo, username, password, rol string, sucursalID *uuid.UUID) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Test",
		PasswordHash: string(hash),
		Rol:          rol,
		SucursalID:   sucursalID,
		Activo:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginExitoso(t *testing.T) {
	repo := newFakeUsuarioRepo()
	sucursal := uuid.New()
	seedUsuario(t, repo, "encargado@centro", "secreto123", "encargado", &sucursal)

	svc := NewAuthService(repo, authConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "encargado@centro",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "encargado", resp.User.Rol)
	require.NotNil(t, resp.User.SucursalID)
	assert.Equal(t, sucursal.String(), *resp.User.SucursalID)
}

func TestLoginConPasswordIncorrecta(t *testing.T) {
	repo := newFakeUsuarioRepo()
	seedUsuario(t, repo, "admin", "correcta", "administrador", nil)

	svc := NewAuthService(repo, authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "inexistente", Password: "x"})
	assert.Error(t, err)
}

func TestRefreshEmiteNuevoAccessToken(t *testing.T) {
	repo := newFakeUsuarioRepo()
	seedUsuario(t, repo, "supervisor", "clave", "supervisor", nil)

	svc := NewAuthService(repo, authConfig())
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "supervisor", Password: "clave"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "supervisor", renovado.User.Rol)
}

func TestRefreshRechazaUsuarioDesactivado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	u := seedUsuario(t, repo, "encargado", "clave", "encargado", nil)

	svc := NewAuthService(repo, authConfig())
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "encargado", Password: "clave"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, u.ID))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.Error(t, err)
}

func TestCrearUsuarioHasheaPassword(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, authConfig())

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "nuevo@hoppiness",
		Nombre:   "Nuevo Encargado",
		Password: "inicial123",
		Rol:      "encargado",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	guardado, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.NotEqual(t, "inicial123", guardado.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("inicial123")))
}
