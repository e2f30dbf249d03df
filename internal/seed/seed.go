package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/landedcost/internal/config"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"go.uber.org/zap"
)

// EnsureDutyCategories creates the configured duty presets that do not exist yet.
// Presets already present, matched by label ignoring case, are left untouched.
func EnsureDutyCategories(ctx context.Context, svc dutydomain.Service, presets []config.DutyPreset, log *zap.Logger) error {
	if svc == nil {
		return errors.New("seed duty category service is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seed")

	existing, err := svc.List(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(existing)+len(presets))
	for _, c := range existing {
		seen[labelKey(c.Label)] = struct{}{}
	}

	created := 0
	for _, preset := range presets {
		key := labelKey(preset.Label)
		if _, ok := seen[key]; ok {
			continue
		}
		rate := preset.Rate
		if _, err := svc.Create(ctx, dutydomain.CreateRequest{
			Label: preset.Label,
			Rate:  &rate,
		}); err != nil {
			return err
		}
		seen[key] = struct{}{}
		created++
	}

	if created > 0 {
		log.Info("duty categories seeded", zap.Int("created", created), zap.Int("presets", len(presets)))
	}
	return nil
}

func labelKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
