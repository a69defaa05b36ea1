package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/grants-api/internal/application/dto"
	"github.com/jhoicas/grants-api/internal/domain"
	"github.com/jhoicas/grants-api/internal/domain/entity"
	"github.com/jhoicas/grants-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens para la cuenta de administración configurada.
type AuthUseCase struct {
	admin  entity.User
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. passwordHash es un hash bcrypt.
func NewAuthUseCase(username, passwordHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		admin:  entity.User{Username: username, PasswordHash: passwordHash, Role: entity.RoleAdmin},
		jwtCfg: jwtCfg,
	}
}

// Login verifica usuario/password, genera JWT y retorna token + rol.
// Usuario o contraseña incorrectos devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	verr := &domain.ValidationError{}
	if username == "" {
		verr.Add("username", "es requerido")
	}
	if in.Password == "" {
		verr.Add("password", "es requerido")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.admin.Username)) == 1
	// bcrypt se evalúa siempre para no revelar por tiempo si el usuario existe
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		zerolog.Ctx(ctx).Warn().Str("username", username).Msg("login rechazado")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.admin.Username, uc.admin.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("username", username).Msg("login correcto")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Role:      uc.admin.Role,
	}, nil
}
