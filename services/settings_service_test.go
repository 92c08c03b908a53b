package services

import (
	"context"
	"testing"
	"time"

	"catalog-service/models"
	"catalog-service/pkg/errs"
)

type fakeSettingRepo struct {
	settings map[string]models.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]models.Setting{}}
}

func (f *fakeSettingRepo) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	setting, ok := f.settings[key]
	if !ok {
		return nil, errs.NotFound("setting")
	}
	return &setting, nil
}

func (f *fakeSettingRepo) FindAll(ctx context.Context) ([]models.Setting, error) {
	all := make([]models.Setting, 0, len(f.settings))
	for _, setting := range f.settings {
		all = append(all, setting)
	}
	return all, nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, key string, value interface{}) (*models.Setting, error) {
	setting := models.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	f.settings[key] = setting
	return &setting, nil
}

func TestSettingsGetReturnsDefaultWhenAbsent(t *testing.T) {
	service := NewSettingsService(newFakeSettingRepo())

	value, err := service.Get(context.Background(), "showReviews", true)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != true {
		t.Fatalf("expected default true, got %v", value)
	}
}

func TestSettingsSetOverwrites(t *testing.T) {
	service := NewSettingsService(newFakeSettingRepo())
	ctx := context.Background()

	if _, err := service.Set(ctx, "heroImage", "v1.jpg"); err != nil {
		t.Fatalf("first Set failed: %v", err)
	}
	if _, err := service.Set(ctx, "heroImage", "v2.jpg"); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	value, err := service.Get(ctx, "heroImage", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "v2.jpg" {
		t.Fatalf("expected upsert overwrite to v2.jpg, got %v", value)
	}

	all, err := service.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert must not duplicate keys, got %d entries", len(all))
	}
}

func TestSettingsGetAllIsSparse(t *testing.T) {
	service := NewSettingsService(newFakeSettingRepo())
	ctx := context.Background()

	if _, err := service.Set(ctx, "showReviews", false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	all, err := service.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if _, ok := all["heroImage"]; ok {
		t.Fatal("unset keys must be absent, not explicit nulls")
	}
	if v, ok := all["showReviews"]; !ok || v != false {
		t.Fatalf("expected showReviews=false, got %v (present=%v)", v, ok)
	}
}

func TestSettingsSetRejectsEmptyKey(t *testing.T) {
	service := NewSettingsService(newFakeSettingRepo())

	if _, err := service.Set(context.Background(), "", "x"); !errs.IsValidation(err) {
		t.Fatalf("expected validation error for empty key, got %v", err)
	}
}
