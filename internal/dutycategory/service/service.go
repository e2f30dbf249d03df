package service

import (
	"context"
	"math"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/landedcost/internal/clock"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/events"
	"github.com/smallbiznis/landedcost/internal/observability/metrics"
	"github.com/smallbiznis/landedcost/internal/pricing/format"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxCodeBase keeps slug plus id suffix inside the code column.
const maxCodeBase = 96

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      dutydomain.Repository
	Cache     dutydomain.Cache
	Publisher events.Publisher
	Clock     clock.Clock
	Metrics   *metrics.CatalogMetrics `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	repo      dutydomain.Repository
	cache     dutydomain.Cache
	publisher events.Publisher
	clock     clock.Clock
	metrics   *metrics.CatalogMetrics
}

func NewService(p Params) dutydomain.Service {
	return &Service{
		log:       p.Log.Named("dutycategory.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		cache:     p.Cache,
		publisher: p.Publisher,
		clock:     p.Clock,
		metrics:   p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req dutydomain.CreateRequest) (*dutydomain.Response, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, dutydomain.ErrInvalidLabel
	}
	if req.Rate == nil {
		return nil, dutydomain.ErrInvalidRate
	}

	id := s.genID.Generate()
	category := dutydomain.DutyCategory{
		ID:        id,
		Code:      categoryCode(label, id),
		Label:     label,
		Rate:      *req.Rate,
		CreatedAt: s.clock.Now(),
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("failed to invalidate duty category cache", zap.Error(err))
		}
	}

	resp := toResponse(&category)
	s.publish(ctx, events.Event{
		Type:       events.TypeDutyCategoryCreated,
		Key:        resp.ID,
		OccurredAt: category.CreatedAt,
		Payload:    resp,
	})

	s.log.Info("duty category created",
		zap.String("duty_category_id", resp.ID),
		zap.String("code", category.Code),
	)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]dutydomain.Response, error) {
	items, err := s.listCategories(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dutydomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

// ResolveRate turns a duty dropdown selection into a duty percentage.
func (s *Service) ResolveRate(ctx context.Context, sel dutydomain.Selection) (float64, error) {
	if sel.IsOther() {
		if sel.OtherRate == nil {
			return 0, nil
		}
		rate := *sel.OtherRate
		if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return 0, dutydomain.ErrInvalidRate
		}
		return rate, nil
	}

	id, err := snowflake.ParseString(strings.TrimSpace(sel.Choice))
	if err != nil {
		return 0, dutydomain.ErrInvalidID
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, dutydomain.ErrNotFound
	}
	return category.Rate, nil
}

// SelectionFor picks the dropdown state for a stored duty rate: the first
// category within tolerance, otherwise "other" carrying the rate itself.
func (s *Service) SelectionFor(ctx context.Context, rate float64) (dutydomain.Selection, error) {
	items, err := s.listCategories(ctx)
	if err != nil {
		return dutydomain.Selection{}, err
	}

	if match, ok := dutydomain.MatchRate(items, rate); ok {
		return dutydomain.Selection{Choice: match.ID.String()}, nil
	}

	other := rate
	return dutydomain.Selection{Choice: dutydomain.OtherChoice, OtherRate: &other}, nil
}

func (s *Service) listCategories(ctx context.Context) ([]dutydomain.DutyCategory, error) {
	if s.cache != nil {
		items, ok, err := s.cache.GetAll(ctx)
		if err != nil {
			s.log.Warn("duty category cache read failed", zap.Error(err))
		}
		s.metrics.IncCacheLookup(ok)
		if ok {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAll(ctx, items); err != nil {
			s.log.Warn("duty category cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish duty category event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}

func toResponse(c *dutydomain.DutyCategory) dutydomain.Response {
	return dutydomain.Response{
		ID:        c.ID.String(),
		Code:      c.Code,
		Label:     c.Label,
		Rate:      c.Rate,
		Display:   DisplayLabel(c.Label, c.Rate),
		CreatedAt: c.CreatedAt,
	}
}

// categoryCode is a readable handle for exports and events. Labels are not
// unique, so the id suffix keeps the code unique; symbol-only labels get the
// bare id.
func categoryCode(label string, id snowflake.ID) string {
	base := slug.Make(label)
	if len(base) > maxCodeBase {
		base = strings.TrimRight(base[:maxCodeBase], "-")
	}
	if base != "" {
		return base + "-" + id.String()
	}
	return id.String()
}

// DisplayLabel renders a category as it appears in the duty dropdown.
func DisplayLabel(label string, rate float64) string {
	return label + " (" + format.Percent(rate) + ")"
}
