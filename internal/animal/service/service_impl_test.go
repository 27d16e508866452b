package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/animal/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Animal{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewService(Params{
		Log:  zap.NewNop(),
		Repo: repository.Provide(db, zap.NewNop()),
	})
	return svc, db
}

func insertAnimal(t *testing.T, db *gorm.DB, id, ownerID snowflake.ID, state domain.LifecycleState) {
	t.Helper()
	animal := &domain.Animal{
		ID:             id,
		OwnerID:        ownerID,
		Name:           "Clover",
		Species:        "cow",
		LifecycleState: state,
		LastDecayAt:    time.Now().UTC(),
	}
	if err := db.Create(animal).Error; err != nil {
		t.Fatalf("insert animal: %v", err)
	}
}

func TestGetByIDEnforcesOwnership(t *testing.T) {
	svc, db := setupService(t)
	insertAnimal(t, db, 1001, 42, domain.LifecycleActive)

	if _, err := svc.GetByID(context.Background(), 42, 1001); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	_, err := svc.GetByID(context.Background(), 99, 1001)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign owner must see not found, got %v", err)
	}
}

func TestGetByIDMissing(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.GetByID(context.Background(), 42, 1001)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRetireActiveAnimal(t *testing.T) {
	svc, db := setupService(t)
	insertAnimal(t, db, 1001, 42, domain.LifecycleActive)

	animal, err := svc.Retire(context.Background(), 42, 1001)
	if err != nil {
		t.Fatalf("retire: %v", err)
	}
	if animal.LifecycleState != domain.LifecycleRetired {
		t.Fatalf("state = %s, want retired", animal.LifecycleState)
	}

	var stored domain.Animal
	if err := db.First(&stored, "id = ?", 1001).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.LifecycleState != domain.LifecycleRetired {
		t.Fatalf("stored state = %s, want retired", stored.LifecycleState)
	}
}

func TestArchiveActiveAnimal(t *testing.T) {
	svc, db := setupService(t)
	insertAnimal(t, db, 1001, 42, domain.LifecycleActive)

	animal, err := svc.Archive(context.Background(), 42, 1001)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if animal.LifecycleState != domain.LifecycleArchived {
		t.Fatalf("state = %s, want archived", animal.LifecycleState)
	}
}

func TestRetireTerminalAnimalRejected(t *testing.T) {
	svc, db := setupService(t)
	insertAnimal(t, db, 1001, 42, domain.LifecycleArchived)

	_, err := svc.Retire(context.Background(), 42, 1001)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestRetireTwiceRejected(t *testing.T) {
	svc, db := setupService(t)
	insertAnimal(t, db, 1001, 42, domain.LifecycleActive)

	if _, err := svc.Retire(context.Background(), 42, 1001); err != nil {
		t.Fatalf("first retire: %v", err)
	}
	_, err := svc.Retire(context.Background(), 42, 1001)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second retire must fail, got %v", err)
	}
}

func TestRetireForeignAnimalRejected(t *testing.T) {
	svc, db := setupService(t)
	insertAnimal(t, db, 1001, 42, domain.LifecycleActive)

	_, err := svc.Retire(context.Background(), 99, 1001)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign retire must see not found, got %v", err)
	}
}
