package service

import (
	"context"
	"testing"

	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/events"
)

func adminFixture() (*AdminService, *memUserRepo, *domain.User, *domain.User) {
	super := &domain.User{ID: "user_super", Email: "super@example.com", Role: domain.RoleSuperAdmin}
	other := &domain.User{ID: "user_other", Email: "other@example.com", Role: domain.RoleUser}
	repo := newMemUserRepo(super, other)
	return NewAdminService(repo, events.NewInMemoryDispatcher()), repo, super, other
}

func TestAssignRole(t *testing.T) {
	svc, _, super, other := adminFixture()

	updated, err := svc.AssignRole(context.Background(), super.ID, other.ID, domain.RoleSeller)
	if err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if updated.Role != domain.RoleSeller {
		t.Errorf("expected seller role, got %q", updated.Role)
	}
}

func TestAssignRoleInvalid(t *testing.T) {
	svc, _, super, other := adminFixture()

	_, err := svc.AssignRole(context.Background(), super.ID, other.ID, domain.Role("moderator"))
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestAssignRoleSelfDemotionBlocked(t *testing.T) {
	svc, repo, super, _ := adminFixture()

	_, err := svc.AssignRole(context.Background(), super.ID, super.ID, domain.RoleAdmin)
	if code := domainCode(t, err); code != "SELF_MODIFICATION_FORBIDDEN" {
		t.Errorf("expected SELF_MODIFICATION_FORBIDDEN, got %s", code)
	}
	stored, _ := repo.GetByID(context.Background(), super.ID)
	if stored.Role != domain.RoleSuperAdmin {
		t.Errorf("role mutated despite rejection: %q", stored.Role)
	}

	// Reasserting the current tier on yourself is allowed.
	if _, err := svc.AssignRole(context.Background(), super.ID, super.ID, domain.RoleSuperAdmin); err != nil {
		t.Errorf("self reassignment of superadmin should pass: %v", err)
	}
}

func TestAssignRoleOtherSuperAdmin(t *testing.T) {
	svc, repo, super, _ := adminFixture()
	peer := &domain.User{ID: "user_peer", Email: "peer@example.com", Role: domain.RoleSuperAdmin}
	_ = repo.Create(context.Background(), peer)

	// Only self-demotion is protected; demoting a fellow superadmin works.
	updated, err := svc.AssignRole(context.Background(), super.ID, peer.ID, domain.RoleUser)
	if err != nil {
		t.Fatalf("demote peer: %v", err)
	}
	if updated.Role != domain.RoleUser {
		t.Errorf("expected user role, got %q", updated.Role)
	}
}

func TestAssignRoleUnknownTarget(t *testing.T) {
	svc, _, super, _ := adminFixture()

	_, err := svc.AssignRole(context.Background(), super.ID, "user_missing", domain.RoleSeller)
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, repo, super, other := adminFixture()

	if err := svc.DeleteUser(context.Background(), super.ID, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), other.ID); err == nil {
		t.Error("account still present after delete")
	}
}

func TestDeleteUserSelfBlocked(t *testing.T) {
	svc, repo, super, _ := adminFixture()

	err := svc.DeleteUser(context.Background(), super.ID, super.ID)
	if code := domainCode(t, err); code != "SELF_MODIFICATION_FORBIDDEN" {
		t.Errorf("expected SELF_MODIFICATION_FORBIDDEN, got %s", code)
	}
	if _, err := repo.GetByID(context.Background(), super.ID); err != nil {
		t.Error("account deleted despite rejection")
	}
}

func TestStats(t *testing.T) {
	svc, repo, _, _ := adminFixture()
	_ = repo.Create(context.Background(), &domain.User{ID: "user_seller", Email: "s@example.com", Role: domain.RoleSeller})

	counts, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if counts.Total != 3 || counts.Sellers != 1 || counts.SuperAdmins != 1 {
		t.Errorf("unexpected counts %+v", counts)
	}
}
