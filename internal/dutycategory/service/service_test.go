package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/landedcost/internal/clock"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/dutycategory/repository"
	"github.com/smallbiznis/landedcost/internal/events"
	"github.com/smallbiznis/landedcost/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	mu          sync.Mutex
	items       []dutydomain.DutyCategory
	set         bool
	invalidated int
}

func (c *memoryCache) GetAll(context.Context) ([]dutydomain.DutyCategory, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items, c.set, nil
}

func (c *memoryCache) SetAll(_ context.Context, items []dutydomain.DutyCategory) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items, c.set = items, true
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items, c.set = nil, false
	c.invalidated++
	return nil
}

type capturePublisher struct {
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	svc       dutydomain.Service
	cache     *memoryCache
	publisher *capturePublisher
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&dutydomain.DutyCategory{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := fixture{cache: &memoryCache{}, publisher: &capturePublisher{}}
	f.svc = NewService(Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.NewRepository(conn),
		Cache:     f.cache,
		Publisher: f.publisher,
		Clock:     clock.NewFakeClock(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)),
	})
	return f
}

func rate(v float64) *float64 { return &v }

func TestCreateAndListOrderedByLabel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dutydomain.CreateRequest{Label: "Electronics", Rate: rate(20)})
	require.NoError(t, err)
	created, err := f.svc.Create(ctx, dutydomain.CreateRequest{Label: "  Apparel ", Rate: rate(12.5)})
	require.NoError(t, err)

	assert.Equal(t, "Apparel", created.Label)
	assert.Equal(t, "apparel-"+created.ID, created.Code)
	assert.Equal(t, "Apparel (12.5%)", created.Display)

	items, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Apparel", items[0].Label)
	assert.Equal(t, "Electronics", items[1].Label)
	assert.Equal(t, "Electronics (20%)", items[1].Display)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, events.TypeDutyCategoryCreated, f.publisher.events[1].Type)
	assert.Equal(t, created.ID, f.publisher.events[1].Key)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dutydomain.CreateRequest{Label: " ", Rate: rate(5)})
	assert.ErrorIs(t, err, dutydomain.ErrInvalidLabel)

	_, err = f.svc.Create(ctx, dutydomain.CreateRequest{Label: "Toys"})
	assert.ErrorIs(t, err, dutydomain.ErrInvalidRate)

	_, err = f.svc.Create(ctx, dutydomain.CreateRequest{Label: "Toys", Rate: rate(-1)})
	assert.ErrorIs(t, err, dutydomain.ErrInvalidRate)
}

func TestCreateAcceptsAnyNonEmptyLabel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	labels := []string{"Wine <= 13%", "Wine > 13%", "%", "***", "Spirits 40%", "Spirits 40", "Electronics", "electronics"}
	codes := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		created, err := f.svc.Create(ctx, dutydomain.CreateRequest{Label: label, Rate: rate(10)})
		require.NoError(t, err, label)
		assert.Equal(t, label, created.Label)
		require.NotEmpty(t, created.Code)
		codes[created.Code] = struct{}{}
	}
	assert.Len(t, codes, len(labels))

	items, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(labels))
}

func TestCategoryCode(t *testing.T) {
	assert.Equal(t, "wine-13-42", categoryCode("Wine <= 13%", 42))
	assert.Equal(t, "42", categoryCode("%", 42))

	long := categoryCode(strings.Repeat("a", 300), 42)
	assert.LessOrEqual(t, len(long), 128)
	assert.True(t, strings.HasSuffix(long, "-42"))
}

func TestListUsesCacheAndCreateInvalidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dutydomain.CreateRequest{Label: "Electronics", Rate: rate(20)})
	require.NoError(t, err)

	_, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, f.cache.set)
	assert.Len(t, f.cache.items, 1)

	_, err = f.svc.Create(ctx, dutydomain.CreateRequest{Label: "Books", Rate: rate(0)})
	require.NoError(t, err)
	assert.False(t, f.cache.set)
	assert.Equal(t, 2, f.cache.invalidated)

	items, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestResolveRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, err := f.svc.Create(ctx, dutydomain.CreateRequest{Label: "Electronics", Rate: rate(20)})
	require.NoError(t, err)

	got, err := f.svc.ResolveRate(ctx, dutydomain.Selection{Choice: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)

	got, err = f.svc.ResolveRate(ctx, dutydomain.Selection{Choice: "other", OtherRate: rate(7.5)})
	require.NoError(t, err)
	assert.Equal(t, 7.5, got)

	got, err = f.svc.ResolveRate(ctx, dutydomain.Selection{Choice: " Other ", OtherRate: rate(3)})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = f.svc.ResolveRate(ctx, dutydomain.Selection{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = f.svc.ResolveRate(ctx, dutydomain.Selection{Choice: "other", OtherRate: rate(-2)})
	assert.ErrorIs(t, err, dutydomain.ErrInvalidRate)

	_, err = f.svc.ResolveRate(ctx, dutydomain.Selection{Choice: "not-an-id"})
	assert.ErrorIs(t, err, dutydomain.ErrInvalidID)

	_, err = f.svc.ResolveRate(ctx, dutydomain.Selection{Choice: "99"})
	assert.ErrorIs(t, err, dutydomain.ErrNotFound)
}

func TestSelectionFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, err := f.svc.Create(ctx, dutydomain.CreateRequest{Label: "Electronics", Rate: rate(20)})
	require.NoError(t, err)

	sel, err := f.svc.SelectionFor(ctx, 20.004)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, sel.Choice)
	assert.Nil(t, sel.OtherRate)

	sel, err = f.svc.SelectionFor(ctx, 18)
	require.NoError(t, err)
	assert.Equal(t, dutydomain.OtherChoice, sel.Choice)
	require.NotNil(t, sel.OtherRate)
	assert.Equal(t, 18.0, *sel.OtherRate)
}
