package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/landedcost/internal/clock"
	"github.com/smallbiznis/landedcost/internal/config"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/events"
	"github.com/smallbiznis/landedcost/internal/observability/metrics"
	"github.com/smallbiznis/landedcost/internal/pricing"
	"github.com/smallbiznis/landedcost/internal/pricing/format"
	"github.com/smallbiznis/landedcost/internal/product/domain"
	"github.com/smallbiznis/landedcost/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Duty      dutydomain.Service
	Settings  *config.CatalogSettingsHolder
	Publisher events.Publisher
	Clock     clock.Clock
	Metrics   *metrics.CatalogMetrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	genID     *snowflake.Node
	duty      dutydomain.Service
	settings  *config.CatalogSettingsHolder
	publisher events.Publisher
	clock     clock.Clock
	metrics   *metrics.CatalogMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("product.service"),
		repo:      p.Repo,
		genID:     p.GenID,
		duty:      p.Duty,
		settings:  p.Settings,
		publisher: p.Publisher,
		clock:     p.Clock,
		metrics:   p.Metrics,
	}
}

func (s *Service) Preview(ctx context.Context, req domain.Request) (*domain.PreviewResponse, error) {
	in, err := s.buildInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	result := pricing.Compute(in)
	s.metrics.IncComputation(metrics.CallSitePreview, result.VATApplies)

	return &domain.PreviewResponse{
		Inputs:  domain.NewInputs(in),
		Pricing: result,
		Display: format.Render(s.currency(), in, result),
	}, nil
}

func (s *Service) Create(ctx context.Context, req domain.Request) (*domain.Response, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOwner
	}

	item := strings.TrimSpace(req.Item)
	if item == "" {
		return nil, domain.ErrInvalidItem
	}

	in, err := s.buildInputs(ctx, req)
	if err != nil {
		return nil, err
	}
	result := pricing.Compute(in)
	s.metrics.IncComputation(metrics.CallSiteSave, result.VATApplies)

	now := s.clock.Now()
	p := &domain.Product{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Item:      item,
		Link:      strings.TrimSpace(req.Link),
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Apply(in, result)

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.metrics.IncProductWrite("create")

	resp := s.priced(p, in, result)
	s.publish(ctx, events.TypeProductCreated, &resp)
	s.log.Info("product created",
		zap.String("product_id", resp.ID),
		zap.String("vat_apply", p.VATApply),
	)
	return &resp, nil
}

// Update overwrites the whole product from req and re-derives the VAT flag.
func (s *Service) Update(ctx context.Context, id string, req domain.Request) (*domain.Response, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOwner
	}

	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item := strings.TrimSpace(req.Item)
	if item == "" {
		return nil, domain.ErrInvalidItem
	}

	p, err := s.repo.FindByID(ctx, s.db, userID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	in, err := s.buildInputs(ctx, req)
	if err != nil {
		return nil, err
	}
	result := pricing.Compute(in)
	s.metrics.IncComputation(metrics.CallSiteSave, result.VATApplies)

	p.Item = item
	p.Link = strings.TrimSpace(req.Link)
	p.UpdatedAt = s.clock.Now()
	p.Apply(in, result)

	updated, err := s.repo.Update(ctx, s.db, p)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if !updated {
		return nil, domain.ErrNotFound
	}
	s.metrics.IncProductWrite("update")

	resp := s.priced(p, in, result)
	s.publish(ctx, events.TypeProductUpdated, &resp)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidOwner
	}

	productID, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, userID, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	s.metrics.IncProductWrite("delete")

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.Event{
			Type:       events.TypeProductDeleted,
			Key:        productID.String(),
			OccurredAt: s.clock.Now(),
		}); err != nil {
			s.log.Warn("failed to publish product event", zap.String("type", events.TypeProductDeleted), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context) (*domain.ListResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOwner
	}

	items, err := s.repo.List(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := &domain.ListResponse{Items: make([]domain.Response, 0, len(items))}
	for i := range items {
		r := s.render(&items[i])
		if r.Pricing != nil {
			resp.Totals.TotalFinal += r.Pricing.TotalFinal
		}
		resp.Items = append(resp.Items, r)
	}
	resp.Totals.Count = len(resp.Items)
	resp.Totals.TotalFinalDisplay = format.Local(s.currency(), resp.Totals.TotalFinal)
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.render(p)
	return &resp, nil
}

// EditView returns the stored product with the form prefilled and the duty
// dropdown resolved against the current categories.
func (s *Service) EditView(ctx context.Context, id string) (*domain.EditView, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	sel, err := s.duty.SelectionFor(ctx, p.Duty)
	if err != nil {
		return nil, err
	}

	form := s.NewForm()
	form.Item = p.Item
	form.Link = p.Link
	form.Cost = &p.Cost
	form.Shipping = p.Shipping
	form.Declared = &p.Declared
	form.Markup = p.Markup
	form.VAT = p.VAT
	form.Carrier = p.Carrier
	form.Handling = p.Handling
	form.DutyChoice = sel.Choice
	form.DutyOther = sel.OtherRate
	if p.Rate > 0 {
		form.Rate = p.Rate
	}
	if p.Quantity > 0 {
		form.Quantity = p.Quantity
	}

	return &domain.EditView{Product: s.render(p), Form: form}, nil
}

// NewForm returns the defaults for a blank product form.
func (s *Service) NewForm() domain.Form {
	return domain.Form{
		Quantity:   pricing.DefaultQuantity,
		Shipping:   pricing.DefaultShipping,
		Rate:       s.settings.Get().DefaultExchangeRate,
		Markup:     pricing.DefaultMarkupPercent,
		VAT:        pricing.DefaultVATRatePercent,
		Carrier:    pricing.DefaultCarrierFee,
		Handling:   pricing.DefaultHandlingFee,
		DutyChoice: dutydomain.OtherChoice,
	}
}

func (s *Service) find(ctx context.Context, id string) (*domain.Product, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOwner
	}

	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, s.db, userID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) buildInputs(ctx context.Context, req domain.Request) (pricing.CostInputs, error) {
	dutyRate, err := s.duty.ResolveRate(ctx, req.DutySelection())
	if err != nil {
		return pricing.CostInputs{}, err
	}
	return req.Fields(dutyRate).Build()
}

// render prices a stored row trusting its saved VAT flag. A row whose values
// no longer build is returned without pricing.
func (s *Service) render(p *domain.Product) domain.Response {
	in, err := p.Fields().Build()
	if err != nil {
		s.log.Warn("stored product does not price",
			zap.String("product_id", p.ID.String()),
			zap.Error(err),
		)
		return toResponse(p)
	}

	fresh := !pricing.BelowThreshold(in.Declared)
	stored, ok := pricing.ParseVATApply(p.VATApply)
	switch {
	case !ok:
		s.log.Warn("stored vat flag unreadable, using threshold",
			zap.String("product_id", p.ID.String()),
			zap.String("vat_apply", p.VATApply),
		)
		stored = fresh
	case stored != fresh:
		s.log.Warn("stored vat flag disagrees with threshold",
			zap.String("product_id", p.ID.String()),
			zap.Bool("stored", stored),
			zap.Bool("fresh", fresh),
		)
		s.metrics.IncVATFlagDrift()
	}

	result := pricing.ComputeStored(in, stored)
	s.metrics.IncComputation(metrics.CallSiteRender, result.VATApplies)
	return s.priced(p, in, result)
}

func (s *Service) priced(p *domain.Product, in pricing.CostInputs, result pricing.Result) domain.Response {
	resp := toResponse(p)
	display := format.Render(s.currency(), in, result)
	resp.Pricing = &result
	resp.Display = &display
	return resp
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:        p.ID.String(),
		Item:      p.Item,
		Quantity:  p.Quantity,
		Link:      p.Link,
		Cost:      p.Cost,
		Shipping:  p.Shipping,
		Declared:  p.Declared,
		Rate:      p.Rate,
		Markup:    p.Markup,
		VAT:       p.VAT,
		Duty:      p.Duty,
		Carrier:   p.Carrier,
		Handling:  p.Handling,
		VATApply:  p.VATApply,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *Service) publish(ctx context.Context, eventType string, resp *domain.Response) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.Event{
		Type:       eventType,
		Key:        resp.ID,
		OccurredAt: resp.UpdatedAt,
		Payload:    resp,
	})
	if err != nil {
		s.log.Warn("failed to publish product event", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *Service) currency() string {
	return s.settings.Get().LocalCurrency
}

func parseID(id string) (snowflake.ID, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || productID == 0 {
		return 0, domain.ErrInvalidID
	}
	return productID, nil
}
