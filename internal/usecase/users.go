package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/orionte/placement-api/internal/entity"
)

type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// UserUseCase manages platform accounts. Every operation requires the admin
// role; passwords are bcrypt-hashed before storage and never returned.
type UserUseCase struct {
	Users UserRepositoryInterface
	Audit AuditLoggerInterface
	Now   Clock
}

func NewUserUseCase(users UserRepositoryInterface, audit AuditLoggerInterface) *UserUseCase {
	return &UserUseCase{Users: users, Audit: audit, Now: time.Now}
}

func requireAdmin(actor entity.Actor) error {
	if actor.Role != entity.RoleAdmin {
		return NewUnauthorizedError("admin role required")
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, input CreateUserInput) (*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if errs := ValidateCreateUserInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	if existing, err := uc.Users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, NewConflictError("user already exists")
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, NewStorageError("failed to hash password: " + err.Error())
	}

	user := &entity.User{
		Email:     input.Email,
		Password:  hashed,
		Role:      input.Role,
		CreatedAt: uc.Now(),
	}
	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewConflictError("user already exists")
		}
		return nil, NewStorageError("failed to create user: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Created User", "/users", "POST", 201, actor.ID,
		map[string]any{"userId": user.ID, "email": user.Email, "role": user.Role},
	))

	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor) ([]*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := uc.Users.FindAll(ctx)
	if err != nil {
		return nil, NewStorageError("failed to list users: " + err.Error())
	}
	return users, nil
}

func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, input UpdateUserInput) (*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if input.ID <= 0 || input.Email == "" || !entity.IsValidRole(input.Role) {
		return nil, NewValidationError("id, email and a valid role are required")
	}

	user, err := uc.Users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, NewNotFoundError("user not found")
	}

	if input.Email != user.Email {
		if existing, err := uc.Users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
			return nil, NewConflictError("email already in use")
		}
	}

	user.Email = input.Email
	user.Role = input.Role
	if input.Password != "" {
		hashed, err := hashPassword(input.Password)
		if err != nil {
			return nil, NewStorageError("failed to hash password: " + err.Error())
		}
		user.Password = hashed
	}

	if err := uc.Users.Update(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewConflictError("email already in use")
		}
		return nil, NewStorageError("failed to update user: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Updated User", "/users", "PUT", 200, actor.ID,
		map[string]any{"userId": user.ID, "email": user.Email, "role": user.Role},
	))

	return user, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, userID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	user, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return NewNotFoundError("user not found")
	}

	// An admin cannot remove their own account.
	if user.ID == actor.ID {
		return NewUnauthorizedError("cannot delete current user")
	}

	if err := uc.Users.Delete(ctx, userID); err != nil {
		return NewStorageError("failed to delete user: " + err.Error())
	}

	appendAudit(ctx, uc.Audit, entity.NewAuditEntry(
		"Deleted User", "/users", "DELETE", 200, actor.ID,
		map[string]any{"userId": userID, "email": user.Email},
	))

	return nil
}

// VerifyPassword compares a bcrypt hash with a plain password. Token
// issuance lives with the external session provider; this helper backs it.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
