package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jo-hoe/rokkastyle/internal/effect"
	"github.com/jo-hoe/rokkastyle/internal/stack"
	"github.com/jo-hoe/rokkastyle/internal/store"
	"github.com/jo-hoe/rokkastyle/internal/style"
)

type CoreService struct {
	config   *ServiceConfig
	registry *effect.Registry
	store    store.StackStore
}

// SyncResult reports what happened to one configured style during a sync.
type SyncResult struct {
	Name    string `json:"name"`
	Hash    string `json:"hash"`
	Changed bool   `json:"changed"`
}

func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	stackStore, err := getStackStore(config)
	if err != nil {
		return nil, err
	}
	return NewCoreServiceWithStore(config, effect.NewDefaultRegistry(), stackStore), nil
}

func NewCoreServiceWithStore(config *ServiceConfig, registry *effect.Registry, stackStore store.StackStore) *CoreService {
	return &CoreService{
		config:   config,
		registry: registry,
		store:    stackStore,
	}
}

// Close releases the underlying store
func (service *CoreService) Close() error {
	if service.store == nil {
		return nil
	}
	return service.store.Close()
}

// BuildEffect returns the operations for a single effect configuration
func (service *CoreService) BuildEffect(id string, config effect.Configuration) ([]stack.Operation, error) {
	return service.registry.Build(id, config)
}

// PreviewStack compiles a style without storing it
func (service *CoreService) PreviewStack(imageStyle style.ImageStyle) (stack.Stack, error) {
	return style.Compile(service.registry, imageStyle)
}

// BuildStack compiles a style and stores the result
func (service *CoreService) BuildStack(ctx context.Context, imageStyle style.ImageStyle) (*store.StoredStack, error) {
	compiled, err := style.Compile(service.registry, imageStyle)
	if err != nil {
		return nil, err
	}
	stored, err := service.store.Save(ctx, compiled)
	if err != nil {
		return nil, err
	}
	slog.Info("stack stored", "name", stored.Name, "hash", stored.Hash, "operations", len(stored.Operations))
	return stored, nil
}

func (service *CoreService) GetStack(ctx context.Context, name string) (*store.StoredStack, error) {
	return service.store.Get(ctx, name)
}

func (service *CoreService) ListStacks(ctx context.Context) ([]*store.StoredStack, error) {
	return service.store.List(ctx)
}

func (service *CoreService) DeleteStack(ctx context.Context, name string) error {
	if err := service.store.Delete(ctx, name); err != nil {
		return err
	}
	slog.Info("stack deleted", "name", name)
	return nil
}

// SyncStyles compiles every configured style and stores those whose
// operations differ from the stored stack. It stops at the first failure.
func (service *CoreService) SyncStyles(ctx context.Context) ([]SyncResult, error) {
	results := make([]SyncResult, 0, len(service.config.Styles))

	for _, imageStyle := range service.config.Styles {
		compiled, err := style.Compile(service.registry, imageStyle)
		if err != nil {
			return results, fmt.Errorf("failed to compile style %s: %w", imageStyle.Name, err)
		}
		hash, err := compiled.Hash()
		if err != nil {
			return results, err
		}

		existing, err := service.store.Get(ctx, compiled.Name)
		if err != nil && !errors.Is(err, store.ErrStackNotFound) {
			return results, fmt.Errorf("failed to read stack %s: %w", compiled.Name, err)
		}
		if existing != nil && existing.Hash == hash {
			slog.Debug("stack unchanged", "name", compiled.Name, "hash", hash)
			results = append(results, SyncResult{Name: compiled.Name, Hash: hash})
			continue
		}

		if _, err := service.store.Save(ctx, compiled); err != nil {
			return results, fmt.Errorf("failed to save stack %s: %w", compiled.Name, err)
		}
		slog.Info("stack synced", "name", compiled.Name, "hash", hash)
		results = append(results, SyncResult{Name: compiled.Name, Hash: hash, Changed: true})
	}

	return results, nil
}

func getStackStore(config *ServiceConfig) (store.StackStore, error) {
	stackStore, err := store.New(config.Store.Type, config.Store.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stack store: %w", err)
	}
	slog.Info("stack store initialized successfully", "type", config.Store.Type)
	return stackStore, nil
}

// RegisteredEffects returns the ids of all effects that can be built
func (service *CoreService) RegisteredEffects() []string {
	return service.registry.RegisteredIDs()
}
