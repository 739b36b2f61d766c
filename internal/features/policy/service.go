package policy

import (
	"context"
	"fmt"

	"staff-acl/internal/common/apperr"
	"staff-acl/internal/common/validation"
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/scope"

	"go.uber.org/zap"
)

// Decision answers field and scope visibility for one permission model.
// Implementations keep their own default posture; callers pick a model
// explicitly and the two are never combined.
type Decision interface {
	CanRead(ctx context.Context, staffID int64, field string, customerID *int64) (bool, error)
	HasScope(ctx context.Context, staffID int64, s scope.Scope, customerID *int64) (bool, error)
	Posture() Posture
}

// ScopedPolicy is backed by scoped grants. Missing grants deny.
type ScopedPolicy struct {
	Grants permission.Evaluator
}

func NewScopedPolicy(grants permission.GrantService) *ScopedPolicy {
	return &ScopedPolicy{Grants: grants}
}

func (p *ScopedPolicy) CanRead(ctx context.Context, staffID int64, field string, customerID *int64) (bool, error) {
	return p.Grants.CanReadField(ctx, staffID, field, customerID)
}

func (p *ScopedPolicy) HasScope(ctx context.Context, staffID int64, s scope.Scope, customerID *int64) (bool, error) {
	return p.Grants.HasScopedGrant(ctx, staffID, s, customerID)
}

func (p *ScopedPolicy) Posture() Posture { return DefaultDeny }

// LevelPolicy is backed by the per-staff level grant. It ignores the customer,
// and a staff member without a row sees everything.
type LevelPolicy struct {
	Levels level.LevelService
}

func NewLevelPolicy(levels level.LevelService) *LevelPolicy {
	return &LevelPolicy{Levels: levels}
}

func (p *LevelPolicy) decide(ctx context.Context, staffID int64, key string) (bool, error) {
	d, err := p.Levels.DecideField(ctx, staffID, key)
	if err != nil {
		return false, err
	}
	return d == level.Show, nil
}

func (p *LevelPolicy) CanRead(ctx context.Context, staffID int64, field string, _ *int64) (bool, error) {
	key, ok := levelFields[field]
	if !ok {
		return false, nil
	}
	return p.decide(ctx, staffID, key)
}

// HasScope fails with InvalidArgument for scopes the level model has no field
// for, such as writes and customer deletion.
func (p *LevelPolicy) HasScope(ctx context.Context, staffID int64, s scope.Scope, _ *int64) (bool, error) {
	key, ok := levelScopes[s]
	if !ok {
		return false, fmt.Errorf("%w: scope %s has no level field", apperr.ErrInvalidArgument, s)
	}
	return p.decide(ctx, staffID, key)
}

func (p *LevelPolicy) Posture() Posture { return DefaultAllow }

type Evaluator interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResult, error)
}

type EvaluatorImpl struct {
	backends map[Model]Decision
	Logger   *zap.Logger
}

func NewEvaluator(scoped *ScopedPolicy, levels *LevelPolicy, logger *zap.Logger) Evaluator {
	return &EvaluatorImpl{
		backends: map[Model]Decision{
			ModelScoped: scoped,
			ModelLevel:  levels,
		},
		Logger: logger,
	}
}

// Evaluate checks a scope when one is given, otherwise a field read.
func (e *EvaluatorImpl) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Model == "" {
		req.Model = ModelScoped
	}
	backend, ok := e.backends[req.Model]
	if !ok {
		return nil, fmt.Errorf("%w: model %q", apperr.ErrInvalidArgument, req.Model)
	}

	result := &EvaluateResult{
		StaffID:    req.StaffID,
		CustomerID: req.CustomerID,
		Scope:      req.Scope,
		Field:      req.Field,
		Model:      req.Model,
		Posture:    backend.Posture(),
	}

	var err error
	if req.Scope != "" {
		var s scope.Scope
		if s, err = scope.Parse(req.Scope); err != nil {
			return nil, err
		}
		result.Allowed, err = backend.HasScope(ctx, req.StaffID, s, req.CustomerID)
	} else {
		result.Allowed, err = backend.CanRead(ctx, req.StaffID, req.Field, req.CustomerID)
	}
	if err != nil {
		return nil, err
	}

	e.Logger.Debug("permission evaluated",
		zap.Int64("staffId", req.StaffID),
		zap.String("model", string(req.Model)),
		zap.String("scope", req.Scope),
		zap.String("field", req.Field),
		zap.Bool("allowed", result.Allowed),
	)
	return result, nil
}
