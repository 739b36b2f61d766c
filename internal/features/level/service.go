package level

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"staff-acl/internal/common/apperr"
	common_models "staff-acl/internal/common/models"
	"staff-acl/internal/config"
	"staff-acl/internal/features/audit"
	"staff-acl/internal/features/directory"
	"staff-acl/pkg/utils"

	"go.uber.org/zap"
)

const auditModule = "staff_field_permissions"

type LevelService interface {
	// GetLevels returns nil when the staff member has never been initialized.
	GetLevels(ctx context.Context, staffID int64) (*LevelGrant, error)
	InitializeLevels(ctx context.Context, staffID int64, def Level) (*LevelGrant, error)
	UpdateLevels(ctx context.Context, staffID int64, levels map[string]Level) (*LevelGrant, error)
	ResetLevels(ctx context.Context, staffID int64) error
	// DecideField reports whether field is shown for the staff member.
	DecideField(ctx context.Context, staffID int64, field string) (Decision, error)
}

type LevelServiceImpl struct {
	Repo         LevelRepository
	StaffDir     directory.StaffDirectory
	AuditService audit.AuditService
	Logger       *zap.Logger

	adminRoles []string
}

func NewLevelService(repo LevelRepository, staffDir directory.StaffDirectory, auditService audit.AuditService, cfg *config.Config, logger *zap.Logger) LevelService {
	return &LevelServiceImpl{
		Repo:         repo,
		StaffDir:     staffDir,
		AuditService: auditService,
		Logger:       logger,
		adminRoles:   cfg.AdminRoles,
	}
}

func (s *LevelServiceImpl) GetLevels(ctx context.Context, staffID int64) (*LevelGrant, error) {
	return s.Repo.FindByStaff(ctx, staffID)
}

func (s *LevelServiceImpl) DecideField(ctx context.Context, staffID int64, field string) (Decision, error) {
	if _, ok := lookup(field); !ok {
		return Hide, fmt.Errorf("%w: level field %q", apperr.ErrInvalidArgument, field)
	}
	g, err := s.Repo.FindByStaff(ctx, staffID)
	if err != nil {
		return Hide, err
	}
	if g.Hides(field) {
		return Hide, nil
	}
	return Show, nil
}

func (s *LevelServiceImpl) requireAdministrator(ctx context.Context) (int64, error) {
	claims, ok := utils.ClaimsFromContext(ctx)
	if !ok {
		return 0, nil
	}
	if !slices.Contains(s.adminRoles, strings.ToLower(claims.Role)) {
		return 0, fmt.Errorf("%w: role %q may not administer permissions", apperr.ErrForbidden, claims.Role)
	}
	return claims.StaffID, nil
}

// InitializeLevels creates the row with every field at def. An existing row is
// returned untouched.
func (s *LevelServiceImpl) InitializeLevels(ctx context.Context, staffID int64, def Level) (*LevelGrant, error) {
	def, err := ParseLevel(string(def))
	if err != nil {
		return nil, err
	}
	actorID, err := s.requireAdministrator(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.StaffDir.FindStaff(ctx, staffID); err != nil {
		return nil, err
	}

	g := NewLevelGrant(staffID, def)
	g.UpdatedBy = actorID
	stored, created, err := s.Repo.Insert(ctx, g)
	if err != nil {
		return nil, err
	}

	if created {
		s.audit(ctx, common_models.AuditActionLevelUpdate, staffID, map[string]common_models.Change{
			"default": {New: def},
		})
	}
	return stored, nil
}

func (s *LevelServiceImpl) UpdateLevels(ctx context.Context, staffID int64, levels map[string]Level) (*LevelGrant, error) {
	actorID, err := s.requireAdministrator(ctx)
	if err != nil {
		return nil, err
	}
	parsed := make(map[string]Level, len(levels))
	for field, raw := range levels {
		if _, ok := lookup(field); !ok {
			return nil, fmt.Errorf("%w: level field %q", apperr.ErrInvalidArgument, field)
		}
		l, err := ParseLevel(string(raw))
		if err != nil {
			return nil, err
		}
		parsed[field] = l
	}
	if _, err := s.StaffDir.FindStaff(ctx, staffID); err != nil {
		return nil, err
	}

	current, err := s.Repo.FindByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		// Start from the unrestricted default so untouched fields keep their effective level.
		current, _, err = s.Repo.Insert(ctx, NewLevelGrant(staffID, LevelEdit))
		if err != nil {
			return nil, err
		}
	}

	changes := make(map[string]common_models.Change, len(parsed))
	for field, l := range parsed {
		old, _ := current.Get(field)
		if old != l {
			changes[field] = common_models.Change{Old: old, New: l}
		}
		_ = current.Set(field, l)
	}
	current.UpdatedBy = actorID

	stored, err := s.Repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		s.audit(ctx, common_models.AuditActionLevelUpdate, staffID, changes)
	}
	return stored, nil
}

// ResetLevels deletes the row, returning the staff member to unrestricted access.
func (s *LevelServiceImpl) ResetLevels(ctx context.Context, staffID int64) error {
	if _, err := s.requireAdministrator(ctx); err != nil {
		return err
	}

	deleted, err := s.Repo.Delete(ctx, staffID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: no level grant for staff %d", apperr.ErrNotFound, staffID)
	}

	s.audit(ctx, common_models.AuditActionLevelReset, staffID, nil)
	return nil
}

func (s *LevelServiceImpl) audit(ctx context.Context, action common_models.AuditAction, staffID int64, changes map[string]common_models.Change) {
	recordID := fmt.Sprintf("staff:%d", staffID)
	if err := s.AuditService.LogChange(ctx, action, auditModule, recordID, changes); err != nil {
		s.Logger.Warn("audit write failed", zap.String("action", string(action)), zap.String("record", recordID), zap.Error(err))
	}
}
