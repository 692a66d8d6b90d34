package service

import (
	"context"
	"errors"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/config"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	sucursalID, err := parseSucursalID(req.SucursalID)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		SucursalID:   sucursalID,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var users []model.Usuario
	var err error
	if incluirInactivos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.SucursalID != nil {
		sucursalID, err := parseSucursalID(req.SucursalID)
		if err != nil {
			return nil, err
		}
		user.SucursalID = sucursalID
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"rol":      user.Rol,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	if user.SucursalID != nil {
		claims["sucursal_id"] = user.SucursalID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func parseSucursalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errors.New("sucursal_id inválido")
	}
	return &id, nil
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	var sucursalID *string
	if u.SucursalID != nil {
		s := u.SucursalID.String()
		sucursalID = &s
	}
	return dto.UsuarioResponse{
		ID:         u.ID.String(),
		Username:   u.Username,
		Nombre:     u.Nombre,
		Email:      u.Email,
		Rol:        u.Rol,
		SucursalID: sucursalID,
		Activo:     u.Activo,
	}
}
