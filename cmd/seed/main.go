package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/config"
	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/pkg/logger"
	"github.com/shopzone-microservice/internal/repository/postgres"
	"github.com/shopzone-microservice/internal/usecase"
)

const seedTimeout = 10 * time.Minute

// Seed runs the one-shot data pipeline: regions, then sub-regions (parents
// must already be committed), then operational areas, then shops.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting seed run",
		zap.String("regions_file", cfg.Ingest.RegionsFile),
		zap.String("subregions_file", cfg.Ingest.SubRegionsFile),
		zap.String("plans_file", cfg.Ingest.PlansFile),
		zap.String("shops_file", cfg.Ingest.ShopsFile),
		zap.Bool("force_replace", cfg.Ingest.ForceReplace),
	)

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	fallback, err := parseCentroid(cfg.Ingest.FallbackCentroid)
	if err != nil {
		log.Fatal("Invalid fallback centroid", zap.String("value", cfg.Ingest.FallbackCentroid), zap.Error(err))
	}

	boundaryRepo := postgres.NewBoundaryRepository(db)
	areaRepo := postgres.NewAreaRepository(db)
	shopRepo := postgres.NewShopRepository(db)

	ingestUC := usecase.NewIngestUseCase(boundaryRepo, cfg.Ingest.CountryCode, fallback, log)
	synthesisUC := usecase.NewSynthesisUseCase(boundaryRepo, areaRepo, fallback, log)
	assignmentUC := usecase.NewAssignmentUseCase(areaRepo, shopRepo, log)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	// 1. Regions. A forced reseed clears the whole schema here, so level 2
	// and everything below always rebuilds from scratch.
	regions, err := loadBoundaryFeatures(cfg.Ingest.RegionsFile)
	if err != nil {
		log.Fatal("Failed to load regions file", zap.Error(err))
	}
	result, err := ingestUC.IngestLevel(ctx, regions, domain.AdminLevelRegion, cfg.Ingest.ForceReplace)
	if err != nil {
		log.Fatal("Region ingestion failed", zap.Error(err))
	}
	logBatch(log, "Regions ingested", result)

	// 2. Sub-regions.
	subRegions, err := loadBoundaryFeatures(cfg.Ingest.SubRegionsFile)
	if err != nil {
		log.Fatal("Failed to load sub-regions file", zap.Error(err))
	}
	result, err = ingestUC.IngestLevel(ctx, subRegions, domain.AdminLevelSubRegion, false)
	if err != nil {
		log.Fatal("Sub-region ingestion failed", zap.Error(err))
	}
	logBatch(log, "Sub-regions ingested", result)

	// 3. Operational areas.
	plans, err := loadPlans(cfg.Ingest.PlansFile)
	if err != nil {
		log.Fatal("Failed to load plans file", zap.Error(err))
	}
	result, err = synthesisUC.Synthesize(ctx, plans)
	if err != nil {
		log.Fatal("Area synthesis failed", zap.Error(err))
	}
	logBatch(log, "Areas synthesized", result)

	// 4. Shops.
	shops, err := loadShopRecords(cfg.Ingest.ShopsFile)
	if err != nil {
		log.Fatal("Failed to load shops file", zap.Error(err))
	}
	result, err = assignmentUC.AssignBatch(ctx, shops)
	if err != nil {
		log.Fatal("Shop assignment failed", zap.Error(err))
	}
	logBatch(log, "Shops assigned", result)

	log.Info("Seed run complete")
}

// loadBoundaryFeatures reads a GeoJSON FeatureCollection and maps each
// feature's properties onto a boundary source record.
func loadBoundaryFeatures(path string) ([]domain.BoundaryFeature, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	features := make([]domain.BoundaryFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		features = append(features, domain.BoundaryFeature{
			NameEn:     propString(f, "name_en"),
			NameAr:     propString(f, "name_ar"),
			Code:       propString(f, "code"),
			ParentCode: propString(f, "parent_code"),
			Geometry:   f.Geometry,
		})
	}
	return features, nil
}

func loadPlans(path string) ([]domain.AreaPlan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plans []domain.AreaPlan
	if err := json.Unmarshal(raw, &plans); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return plans, nil
}

func loadShopRecords(path string) ([]domain.ShopSeedRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []domain.ShopSeedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func propString(f *geojson.Feature, key string) string {
	if v, ok := f.Properties[key].(string); ok {
		return v
	}
	return ""
}

// parseCentroid parses "lat,lon".
func parseCentroid(s string) (domain.LatLon, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.LatLon{}, fmt.Errorf("expected \"lat,lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.LatLon{}, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.LatLon{}, err
	}
	return domain.LatLon{Lat: lat, Lon: lon}, nil
}

func logBatch(log *zap.Logger, msg string, result *domain.BatchResult) {
	log.Info(msg,
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)
	for _, reason := range result.SkipReasons {
		log.Warn("Seed item skipped", zap.String("reason", reason))
	}
}
