package seed

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/landedcost/internal/cache"
	"github.com/smallbiznis/landedcost/internal/clock"
	"github.com/smallbiznis/landedcost/internal/config"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/dutycategory/repository"
	dutyservice "github.com/smallbiznis/landedcost/internal/dutycategory/service"
	"github.com/smallbiznis/landedcost/internal/events"
	"github.com/smallbiznis/landedcost/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDutyService(t *testing.T) dutydomain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&dutydomain.DutyCategory{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return dutyservice.NewService(dutyservice.Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.NewRepository(conn),
		Cache:     cache.NewDutyCategoryCache(nil),
		Publisher: events.NoopPublisher{},
		Clock:     clock.SystemClock{},
	})
}

func TestEnsureDutyCategoriesIsIdempotent(t *testing.T) {
	svc := newDutyService(t)
	ctx := context.Background()
	presets := []config.DutyPreset{
		{Label: "Electronics", Rate: 20},
		{Label: "Books", Rate: 0},
	}

	require.NoError(t, EnsureDutyCategories(ctx, svc, presets, zap.NewNop()))
	require.NoError(t, EnsureDutyCategories(ctx, svc, presets, zap.NewNop()))
	require.NoError(t, EnsureDutyCategories(ctx, svc, []config.DutyPreset{{Label: " books ", Rate: 5}}, zap.NewNop()))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Books", list[0].Label)
	assert.Equal(t, 20.0, list[1].Rate)
}

func TestEnsureDutyCategoriesStopsOnInvalidPreset(t *testing.T) {
	svc := newDutyService(t)

	err := EnsureDutyCategories(context.Background(), svc, []config.DutyPreset{{Label: "Bad", Rate: -1}}, nil)
	assert.ErrorIs(t, err, dutydomain.ErrInvalidRate)
}

func TestEnsureDutyCategoriesRequiresService(t *testing.T) {
	assert.Error(t, EnsureDutyCategories(context.Background(), nil, nil, nil))
}
