package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/events"
	"github.com/spec-kit/live-commerce/internal/repository"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// AdminService covers user administration: listings, role assignment,
// deletion and dashboard statistics.
type AdminService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{users: users, dispatcher: dispatcher}
}

// ListUsers returns a filtered page of accounts plus the total match count.
func (s *AdminService) ListUsers(ctx context.Context, filters repository.UserListFilters) ([]domain.User, int64, error) {
	if filters.Limit <= 0 {
		filters.Limit = 10
	}
	return s.users.List(ctx, filters)
}

// GetUser fetches any account by id.
func (s *AdminService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// AssignRole sets a user's role. The gate already guarantees the actor is a
// superadmin; the remaining business rule is that a superadmin cannot move
// their own account off the superadmin tier.
func (s *AdminService) AssignRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid role. Must be: user, seller, admin, or superadmin", nil)
	}

	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if actorID == targetID && role != domain.RoleSuperAdmin {
		return nil, apperrors.NewSelfModificationForbidden("Cannot demote yourself from superadmin role")
	}

	oldRole := target.Role
	target.Role = role
	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRoleChanged,
		SubjectID: target.ID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   events.RoleChangedPayload{OldRole: oldRole, NewRole: role},
	})
	return target, nil
}

// DeleteUser removes an account. Superadmins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperrors.NewSelfModificationForbidden("Cannot delete your own account")
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserDeleted,
		SubjectID: targetID,
		ActorID:   actorID,
		Timestamp: time.Now(),
	})
	return nil
}

// Stats aggregates per-role totals and accounts registered in the last 30 days.
func (s *AdminService) Stats(ctx context.Context) (repository.RoleCounts, error) {
	return s.users.CountByRole(ctx, time.Now().AddDate(0, 0, -30))
}

func (s *AdminService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
