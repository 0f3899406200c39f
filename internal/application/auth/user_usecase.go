package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// UserUseCase perfil y activación de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// SetActive activa o desactiva un usuario. Un usuario inactivo no puede iniciar sesión;
// los tokens ya emitidos siguen válidos hasta expirar.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, id string, active bool) (*dto.UserResponse, error) {
	if actorID == id && !active {
		return nil, fmt.Errorf("%w: no puede desactivarse a sí mismo", domain.ErrConflict)
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}
