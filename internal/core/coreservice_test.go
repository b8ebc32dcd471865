package core

import (
	"context"
	"errors"
	"testing"

	"github.com/jo-hoe/rokkastyle/internal/effect"
	"github.com/jo-hoe/rokkastyle/internal/stack"
	"github.com/jo-hoe/rokkastyle/internal/store"
	"github.com/jo-hoe/rokkastyle/internal/style"
)

func newTestCoreService(t *testing.T, styles ...style.ImageStyle) *CoreService {
	t.Helper()
	cfg := &ServiceConfig{
		Store: Store{
			Type:             store.TypeSQLite,
			ConnectionString: ":memory:",
		},
		Styles: styles,
	}
	svc, err := NewCoreService(cfg)
	if err != nil {
		t.Fatalf("NewCoreService error: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func rotateStyle(name string, degrees any) style.ImageStyle {
	return style.ImageStyle{
		Name: name,
		Effects: []style.EffectConfig{
			{ID: effect.IDRotate, Data: effect.Configuration{"degrees": degrees, "bgcolor": "#000000"}},
		},
	}
}

func TestNewCoreService_UnsupportedStore(t *testing.T) {
	_, err := NewCoreService(&ServiceConfig{Store: Store{Type: "mongodb"}})
	if err == nil {
		t.Fatal("expected error for unsupported store type")
	}
}

func TestSyncStyles_OnlyChangedStacksAreSaved(t *testing.T) {
	svc := newTestCoreService(t, rotateStyle("left", -90), rotateStyle("right", 90))
	ctx := context.Background()

	first, err := svc.SyncStyles(ctx)
	if err != nil {
		t.Fatalf("SyncStyles #1 error: %v", err)
	}
	if len(first) != 2 || !first[0].Changed || !first[1].Changed {
		t.Fatalf("expected both stacks to be created, got %+v", first)
	}

	second, err := svc.SyncStyles(ctx)
	if err != nil {
		t.Fatalf("SyncStyles #2 error: %v", err)
	}
	for _, result := range second {
		if result.Changed {
			t.Errorf("expected %s to be unchanged on resync", result.Name)
		}
	}

	// 270 degrees is the same rotation as -90
	svc.config.Styles[0] = rotateStyle("left", 270)
	svc.config.Styles[1] = rotateStyle("right", 180)
	third, err := svc.SyncStyles(ctx)
	if err != nil {
		t.Fatalf("SyncStyles #3 error: %v", err)
	}
	if third[0].Changed {
		t.Error("expected left to be unchanged after equivalent angle")
	}
	if !third[1].Changed {
		t.Error("expected right to change")
	}

	stored, err := svc.GetStack(ctx, "right")
	if err != nil {
		t.Fatalf("GetStack error: %v", err)
	}
	if stored.Hash != third[1].Hash {
		t.Errorf("expected stored hash %s, got %s", third[1].Hash, stored.Hash)
	}
}

func TestSyncStyles_StopsOnInvalidStyle(t *testing.T) {
	svc := newTestCoreService(t, rotateStyle("ok", 10), rotateStyle("broken", "sideways"), rotateStyle("never", 20))

	results, err := svc.SyncStyles(context.Background())
	if !errors.Is(err, effect.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if len(results) != 1 || results[0].Name != "ok" {
		t.Errorf("expected only the first style to be synced, got %+v", results)
	}
	if _, err := svc.GetStack(context.Background(), "never"); !errors.Is(err, store.ErrStackNotFound) {
		t.Errorf("expected style after failure not to be stored, got %v", err)
	}
}

func TestSyncStyles_UnencodableBackgroundColor(t *testing.T) {
	yamlMap := style.ImageStyle{
		Name: "yaml-map",
		Effects: []style.EffectConfig{
			{ID: effect.IDRotate, Data: effect.Configuration{
				"degrees": 90,
				"bgcolor": map[interface{}]interface{}{1: "red"},
			}},
		},
	}
	svc := newTestCoreService(t, yamlMap)

	_, err := svc.SyncStyles(context.Background())
	if !errors.Is(err, effect.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := svc.GetStack(context.Background(), "yaml-map"); !errors.Is(err, store.ErrStackNotFound) {
		t.Errorf("expected unencodable style not to be stored, got %v", err)
	}
}

func TestBuildStack_ListAndDelete(t *testing.T) {
	svc := newTestCoreService(t)
	ctx := context.Background()

	stored, err := svc.BuildStack(ctx, rotateStyle("tilted", 375))
	if err != nil {
		t.Fatalf("BuildStack error: %v", err)
	}
	if len(stored.Operations) != 1 || stored.Operations[0].Options["angle"] != 15 {
		t.Errorf("unexpected operations %+v", stored.Operations)
	}

	stacks, err := svc.ListStacks(ctx)
	if err != nil {
		t.Fatalf("ListStacks error: %v", err)
	}
	if len(stacks) != 1 || stacks[0].Name != "tilted" {
		t.Fatalf("unexpected stacks %+v", stacks)
	}

	if err := svc.DeleteStack(ctx, "tilted"); err != nil {
		t.Fatalf("DeleteStack error: %v", err)
	}
	if err := svc.DeleteStack(ctx, "tilted"); !errors.Is(err, store.ErrStackNotFound) {
		t.Errorf("expected ErrStackNotFound, got %v", err)
	}
}

func TestPreviewStack_DoesNotStore(t *testing.T) {
	svc := newTestCoreService(t)

	preview, err := svc.PreviewStack(rotateStyle("preview", -30))
	if err != nil {
		t.Fatalf("PreviewStack error: %v", err)
	}
	if preview.Operations[0].Options["angle"] != 330 {
		t.Errorf("expected angle 330, got %v", preview.Operations[0].Options["angle"])
	}
	if _, err := svc.GetStack(context.Background(), "preview"); !errors.Is(err, store.ErrStackNotFound) {
		t.Errorf("expected preview not to be stored, got %v", err)
	}
}

func TestBuildEffect(t *testing.T) {
	svc := newTestCoreService(t)

	ops, err := svc.BuildEffect(effect.IDRotate, effect.Configuration{"degrees": 45, "bgcolor": "#fff"})
	if err != nil {
		t.Fatalf("BuildEffect error: %v", err)
	}
	if len(ops) != 1 || ops[0].Name != stack.OperationRotate {
		t.Fatalf("unexpected operations %+v", ops)
	}

	if _, err := svc.BuildEffect("image_unknown", nil); !errors.Is(err, effect.ErrUnknownEffect) {
		t.Errorf("expected ErrUnknownEffect, got %v", err)
	}
}
