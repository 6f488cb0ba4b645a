package api

import (
	"context"
	"fmt"

	"github.com/JaimeStill/heritage/internal/catalog"
	"github.com/JaimeStill/heritage/internal/classifier"
	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/internal/generator"
	"github.com/JaimeStill/heritage/internal/predictions"
	"github.com/JaimeStill/heritage/internal/recognition"
	"github.com/JaimeStill/heritage/internal/sites"
	"github.com/JaimeStill/heritage/pkg/storage"
)

// Domain holds the domain systems behind the page and API routes.
type Domain struct {
	Catalog     *catalog.Catalog
	Predictions predictions.System
	Recognition recognition.System
	Sites       sites.System
}

// NewDomain loads the catalog and label artifacts from storage and builds every
// domain system around them. A missing artifact fails construction.
func NewDomain(ctx context.Context, runtime *Runtime) (*Domain, error) {
	cat, err := catalog.Load(ctx, runtime.Storage, runtime.Classifier.CatalogKey)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	labels, err := loadLabels(ctx, runtime, cat)
	if err != nil {
		return nil, err
	}

	model, err := classifier.NewModel(
		classifier.NewRemote(runtime.Classifier.Endpoint, runtime.Classifier.TimeoutDuration()),
		labels,
		runtime.Classifier.ImageSize,
		runtime.Classifier.MaxPixels,
	)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	var history predictions.System
	if runtime.Database != nil {
		history = predictions.New(runtime.Database.Connection(), runtime.Logger, runtime.Pagination)
	} else {
		history = predictions.Disabled(runtime.Logger, runtime.Pagination)
	}

	recognitionSystem := recognition.New(
		model,
		recognition.Gate{Threshold: threshold(&runtime.Classifier)},
		history,
		runtime.Classifier.TempDir,
		runtime.Logger,
	)

	sitesSystem := sites.New(
		cat,
		generator.New(generatorOptions(&runtime.Generator), runtime.Logger),
		runtime.Cache,
		runtime.Logger,
	)

	runtime.Logger.Info(
		"domain initialized",
		"sites", cat.Len(),
		"labels", len(labels),
		"history", runtime.Database != nil,
	)

	return &Domain{
		Catalog:     cat,
		Predictions: history,
		Recognition: recognitionSystem,
		Sites:       sitesSystem,
	}, nil
}

func threshold(cfg *config.ClassifierConfig) float64 {
	if cfg.Threshold == nil {
		return recognition.DefaultThreshold
	}
	return *cfg.Threshold
}

func generatorOptions(cfg *config.GeneratorConfig) generator.Options {
	opts := generator.Options{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.TimeoutDuration(),
	}
	if cfg.Retries != nil {
		opts.Retries = *cfg.Retries
	}
	return opts
}

// loadLabels reads the persisted label order, or falls back to the catalog's key order.
func loadLabels(ctx context.Context, runtime *Runtime, cat *catalog.Catalog) (classifier.Labels, error) {
	if runtime.Classifier.LabelsKey == "" {
		runtime.Logger.Warn("no labels artifact configured, using catalog key order")
		return classifier.Labels(cat.Keys()), nil
	}

	key := runtime.Classifier.LabelsKey
	ok, err := runtime.Storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check labels: %w", err)
	}
	if !ok {
		runtime.Logger.Error("labels artifact configured but missing", "key", key)
		return nil, fmt.Errorf("load labels: %s: %w", key, storage.ErrNotFound)
	}

	labels, err := classifier.LoadLabels(ctx, runtime.Storage, key)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	for _, l := range labels {
		if _, ok := cat.Lookup(l); !ok {
			runtime.Logger.Warn("label has no catalog entry", "label", l)
		}
	}
	return labels, nil
}
