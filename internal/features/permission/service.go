package permission

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"staff-acl/internal/common/apperr"
	common_models "staff-acl/internal/common/models"
	"staff-acl/internal/common/validation"
	"staff-acl/internal/config"
	"staff-acl/internal/features/audit"
	"staff-acl/internal/features/directory"
	"staff-acl/internal/features/scope"
	"staff-acl/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const auditModule = "field_permission"

// Evaluator answers scoped-grant questions. Absence of a valid grant is the only deny.
type Evaluator interface {
	HasScopedGrant(ctx context.Context, staffID int64, s scope.Scope, customerID *int64) (bool, error)
	CanReadField(ctx context.Context, staffID int64, field string, customerID *int64) (bool, error)
	CanWriteField(ctx context.Context, staffID int64, field string, customerID *int64) (bool, error)
	// GrantedScopes returns the distinct scopes with a valid grant applying to customerID.
	GrantedScopes(ctx context.Context, staffID int64, customerID *int64) ([]scope.Scope, error)
}

type GrantService interface {
	Evaluator

	Grant(ctx context.Context, req GrantRequest) (*ScopedGrant, error)
	BulkGrant(ctx context.Context, req BulkGrantRequest) ([]ScopedGrant, error)
	Revoke(ctx context.Context, id string) (*ScopedGrant, error)
	BulkRevoke(ctx context.Context, req BulkRevokeRequest) ([]ScopedGrant, error)
	RevokeAll(ctx context.Context, staffID int64) ([]ScopedGrant, error)
	RevokeForCustomer(ctx context.Context, staffID, customerID int64) ([]ScopedGrant, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*ScopedGrant, error)
	ListForStaff(ctx context.Context, staffID int64) ([]ScopedGrant, error)
	CountExpiredActive(ctx context.Context) (int64, error)
}

type GrantServiceImpl struct {
	GrantRepo    GrantRepository
	StaffDir     directory.StaffDirectory
	CustomerDir  directory.CustomerDirectory
	AuditService audit.AuditService
	Logger       *zap.Logger

	adminRoles []string
	now        func() time.Time
}

func NewGrantService(
	grantRepo GrantRepository,
	staffDir directory.StaffDirectory,
	customerDir directory.CustomerDirectory,
	auditService audit.AuditService,
	cfg *config.Config,
	logger *zap.Logger,
) GrantService {
	return &GrantServiceImpl{
		GrantRepo:    grantRepo,
		StaffDir:     staffDir,
		CustomerDir:  customerDir,
		AuditService: auditService,
		Logger:       logger,
		adminRoles:   cfg.AdminRoles,
		now:          time.Now,
	}
}

func (s *GrantServiceImpl) HasScopedGrant(ctx context.Context, staffID int64, sc scope.Scope, customerID *int64) (bool, error) {
	grants, err := s.GrantRepo.FindByStaffAndScope(ctx, staffID, sc)
	if err != nil {
		return false, err
	}

	now := s.now()
	for i := range grants {
		if grants[i].IsValid(now) && grants[i].AppliesTo(customerID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *GrantServiceImpl) CanReadField(ctx context.Context, staffID int64, field string, customerID *int64) (bool, error) {
	sc, ok := scope.ReadScopeForField(field)
	if !ok {
		s.Logger.Debug("no read scope for field, denying", zap.String("field", field), zap.Int64("staffId", staffID))
		return false, nil
	}
	return s.HasScopedGrant(ctx, staffID, sc, customerID)
}

func (s *GrantServiceImpl) CanWriteField(ctx context.Context, staffID int64, field string, customerID *int64) (bool, error) {
	sc, ok := scope.WriteScopeForField(field)
	if !ok {
		s.Logger.Debug("no write scope for field, denying", zap.String("field", field), zap.Int64("staffId", staffID))
		return false, nil
	}
	return s.HasScopedGrant(ctx, staffID, sc, customerID)
}

func (s *GrantServiceImpl) GrantedScopes(ctx context.Context, staffID int64, customerID *int64) ([]scope.Scope, error) {
	grants, err := s.GrantRepo.FindByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	seen := make(map[scope.Scope]bool)
	var scopes []scope.Scope
	for i := range grants {
		g := &grants[i]
		if !g.IsValid(now) || !g.AppliesTo(customerID) || seen[g.Scope] {
			continue
		}
		seen[g.Scope] = true
		scopes = append(scopes, g.Scope)
	}
	slices.Sort(scopes)
	return scopes, nil
}

// requireAdministrator rejects callers whose token role is not an admin role.
// Calls without claims come from trusted in-process callers (seeders, CLIs).
func (s *GrantServiceImpl) requireAdministrator(ctx context.Context) (int64, error) {
	claims, ok := utils.ClaimsFromContext(ctx)
	if !ok {
		return 0, nil
	}
	if !slices.Contains(s.adminRoles, strings.ToLower(claims.Role)) {
		return 0, fmt.Errorf("%w: role %q may not administer permissions", apperr.ErrForbidden, claims.Role)
	}
	return claims.StaffID, nil
}

func (s *GrantServiceImpl) checkSubjects(ctx context.Context, staffID int64, customerIDs []int64) error {
	if _, err := s.StaffDir.FindStaff(ctx, staffID); err != nil {
		return err
	}
	for _, id := range customerIDs {
		if _, err := s.CustomerDir.FindCustomer(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *GrantServiceImpl) Grant(ctx context.Context, req GrantRequest) (*ScopedGrant, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	sc, err := scope.Parse(req.Scope)
	if err != nil {
		return nil, err
	}
	actorID, err := s.requireAdministrator(ctx)
	if err != nil {
		return nil, err
	}

	var customers []int64
	if req.CustomerID != nil {
		customers = []int64{*req.CustomerID}
	}
	if err := s.checkSubjects(ctx, req.StaffID, customers); err != nil {
		return nil, err
	}

	return s.upsert(ctx, actorID, req.StaffID, sc, req.CustomerID, req.ExpiresAt, req.Notes)
}

func (s *GrantServiceImpl) upsert(ctx context.Context, actorID, staffID int64, sc scope.Scope, customerID *int64, expiresAt *time.Time, notes string) (*ScopedGrant, error) {
	stored, err := s.GrantRepo.Upsert(ctx, &ScopedGrant{
		StaffID:    staffID,
		Scope:      sc,
		CustomerID: customerID,
		Granted:    true,
		GrantedBy:  actorID,
		GrantedAt:  s.now(),
		ExpiresAt:  expiresAt,
		Notes:      notes,
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, common_models.AuditActionGrant, stored.ID.Hex(), map[string]common_models.Change{
		"staff_id":    {New: staffID},
		"scope":       {New: sc},
		"customer_id": {New: customerID},
		"granted":     {New: true},
		"expires_at":  {New: expiresAt},
	})

	return stored, nil
}

// BulkGrant materializes one identity per (scope, customer) pair. It is not
// atomic: on failure the rows written so far are returned with the error.
func (s *GrantServiceImpl) BulkGrant(ctx context.Context, req BulkGrantRequest) ([]ScopedGrant, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	scopes, err := scope.ParseAll(req.Scopes)
	if err != nil {
		return nil, err
	}
	actorID, err := s.requireAdministrator(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkSubjects(ctx, req.StaffID, req.CustomerIDs); err != nil {
		return nil, err
	}

	targets := customerTargets(req.CustomerIDs)
	granted := make([]ScopedGrant, 0, len(scopes)*len(targets))
	for _, sc := range scopes {
		for _, customerID := range targets {
			stored, err := s.upsert(ctx, actorID, req.StaffID, sc, customerID, req.ExpiresAt, req.Notes)
			if err != nil {
				return granted, fmt.Errorf("bulk grant stopped at %s: %w", sc, err)
			}
			granted = append(granted, *stored)
		}
	}

	s.Logger.Info("bulk grant applied",
		zap.Int64("staffId", req.StaffID),
		zap.Int("scopes", len(scopes)),
		zap.Int("customers", len(req.CustomerIDs)),
		zap.Int("rows", len(granted)),
	)
	return granted, nil
}

// customerTargets expands a customer list into upsert targets; empty means one global target.
func customerTargets(ids []int64) []*int64 {
	if len(ids) == 0 {
		return []*int64{nil}
	}
	seen := make(map[int64]bool, len(ids))
	targets := make([]*int64, 0, len(ids))
	for _, id := range ids {
		id := id
		if seen[id] {
			continue
		}
		seen[id] = true
		targets = append(targets, &id)
	}
	return targets
}

func parseGrantID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: grant id %q", apperr.ErrInvalidArgument, id)
	}
	return oid, nil
}

func (s *GrantServiceImpl) Revoke(ctx context.Context, id string) (*ScopedGrant, error) {
	oid, err := parseGrantID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireAdministrator(ctx); err != nil {
		return nil, err
	}

	stored, err := s.GrantRepo.SetGranted(ctx, oid, false)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, common_models.AuditActionRevoke, id, map[string]common_models.Change{
		"granted": {New: false},
	})
	return stored, nil
}

func (s *GrantServiceImpl) BulkRevoke(ctx context.Context, req BulkRevokeRequest) ([]ScopedGrant, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	scopes, err := scope.ParseAll(req.Scopes)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireAdministrator(ctx); err != nil {
		return nil, err
	}

	var revoked []ScopedGrant
	for _, sc := range scopes {
		for _, customerID := range customerTargets(req.CustomerIDs) {
			stored, err := s.GrantRepo.RevokeIdentity(ctx, req.StaffID, sc, customerID)
			if err != nil {
				return revoked, fmt.Errorf("bulk revoke stopped at %s: %w", sc, err)
			}
			if stored == nil {
				continue
			}
			revoked = append(revoked, *stored)
			s.audit(ctx, common_models.AuditActionRevoke, stored.ID.Hex(), map[string]common_models.Change{
				"granted": {New: false},
			})
		}
	}
	return revoked, nil
}

func (s *GrantServiceImpl) RevokeAll(ctx context.Context, staffID int64) ([]ScopedGrant, error) {
	if _, err := s.requireAdministrator(ctx); err != nil {
		return nil, err
	}
	if err := s.checkSubjects(ctx, staffID, nil); err != nil {
		return nil, err
	}

	count, err := s.GrantRepo.RevokeByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, common_models.AuditActionRevoke, fmt.Sprintf("staff:%d", staffID), map[string]common_models.Change{
		"revoked_rows": {New: count},
	})

	return s.GrantRepo.FindByStaff(ctx, staffID)
}

func (s *GrantServiceImpl) RevokeForCustomer(ctx context.Context, staffID, customerID int64) ([]ScopedGrant, error) {
	if _, err := s.requireAdministrator(ctx); err != nil {
		return nil, err
	}
	if err := s.checkSubjects(ctx, staffID, []int64{customerID}); err != nil {
		return nil, err
	}

	count, err := s.GrantRepo.RevokeByStaffAndCustomer(ctx, staffID, customerID)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, common_models.AuditActionRevoke, fmt.Sprintf("staff:%d", staffID), map[string]common_models.Change{
		"customer_id":  {New: customerID},
		"revoked_rows": {New: count},
	})

	grants, err := s.GrantRepo.FindByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	forCustomer := make([]ScopedGrant, 0, len(grants))
	for _, g := range grants {
		if g.CustomerID != nil && *g.CustomerID == customerID {
			forCustomer = append(forCustomer, g)
		}
	}
	return forCustomer, nil
}

// Delete physically removes a grant row and its history.
func (s *GrantServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseGrantID(id)
	if err != nil {
		return err
	}
	if _, err := s.requireAdministrator(ctx); err != nil {
		return err
	}

	existing, err := s.GrantRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.GrantRepo.Delete(ctx, oid); err != nil {
		return err
	}

	s.audit(ctx, common_models.AuditActionDelete, id, map[string]common_models.Change{
		"grant": {Old: existing, New: nil},
	})
	return nil
}

func (s *GrantServiceImpl) Get(ctx context.Context, id string) (*ScopedGrant, error) {
	oid, err := parseGrantID(id)
	if err != nil {
		return nil, err
	}
	return s.GrantRepo.FindByID(ctx, oid)
}

func (s *GrantServiceImpl) ListForStaff(ctx context.Context, staffID int64) ([]ScopedGrant, error) {
	if err := s.checkSubjects(ctx, staffID, nil); err != nil {
		return nil, err
	}
	return s.GrantRepo.FindByStaff(ctx, staffID)
}

func (s *GrantServiceImpl) CountExpiredActive(ctx context.Context) (int64, error) {
	return s.GrantRepo.CountExpiredActive(ctx, s.now())
}

func (s *GrantServiceImpl) audit(ctx context.Context, action common_models.AuditAction, recordID string, changes map[string]common_models.Change) {
	if err := s.AuditService.LogChange(ctx, action, auditModule, recordID, changes); err != nil {
		s.Logger.Warn("audit write failed", zap.String("action", string(action)), zap.String("record", recordID), zap.Error(err))
	}
}
