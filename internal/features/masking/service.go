package masking

import (
	"context"

	"staff-acl/internal/features/level"

	"go.uber.org/zap"
)

type MaskingService interface {
	Mask(ctx context.Context, view CustomerView, staffID int64) (CustomerView, error)
	MaskBasic(ctx context.Context, view CustomerView, staffID int64) (BasicView, error)
}

type MaskingServiceImpl struct {
	Levels level.LevelService
	Logger *zap.Logger
}

func NewMaskingService(levels level.LevelService, logger *zap.Logger) MaskingService {
	return &MaskingServiceImpl{
		Levels: levels,
		Logger: logger,
	}
}

func (s *MaskingServiceImpl) Mask(ctx context.Context, view CustomerView, staffID int64) (CustomerView, error) {
	g, err := s.Levels.GetLevels(ctx, staffID)
	if err != nil {
		return CustomerView{}, err
	}
	if g == nil {
		s.Logger.Debug("no level grant, passing record through", zap.Int64("staffId", staffID), zap.Int64("customerId", view.ID))
	}
	return Apply(view, g), nil
}

// MaskBasic applies the level grant first, then the public projection.
func (s *MaskingServiceImpl) MaskBasic(ctx context.Context, view CustomerView, staffID int64) (BasicView, error) {
	out, err := s.Mask(ctx, view, staffID)
	if err != nil {
		return BasicView{}, err
	}
	return ToBasicView(out), nil
}
