package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	animalrepo "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/repository"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/clock"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/mailer"
	notificationdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	notificationrepo "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/repository"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/render"
	notificationservice "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/service"
	ownerdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/owner/domain"
	ownerrepo "github.com/MegaDev007/farmheart-backend-sub000/internal/owner/repository"
	vitalsdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type vitalsFixture struct {
	db      *gorm.DB
	vitals  vitalsdomain.Service
	animals animaldomain.Repository
	notifs  notificationdomain.Repository
	ownerID snowflake.ID
	animal  *animaldomain.Animal
}

func setupVitalsFixture(t *testing.T) *vitalsFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&ownerdomain.Owner{},
		&animaldomain.Animal{},
		&animaldomain.StatSnapshot{},
		&notificationdomain.NotificationRecord{},
		&notificationdomain.ChannelPreference{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	log := zap.NewNop()
	cfg := config.Default()

	owners := ownerrepo.Provide(db)
	animals := animalrepo.Provide(db, log)
	notifs := notificationrepo.Provide(db)

	ownerID := node.Generate()
	owner := &ownerdomain.Owner{
		ID:           ownerID,
		Username:     "demo",
		Email:        "demo@farmheart.local",
		APITokenHash: "unused",
	}
	if err := owners.Insert(context.Background(), owner); err != nil {
		t.Fatalf("insert owner: %v", err)
	}

	animal := &animaldomain.Animal{
		ID:             node.Generate(),
		OwnerID:        ownerID,
		Name:           "Clover",
		Species:        "cow",
		LifecycleState: animaldomain.LifecycleActive,
		LastDecayAt:    time.Now().UTC(),
	}
	if err := db.Create(animal).Error; err != nil {
		t.Fatalf("insert animal: %v", err)
	}

	prefs := notificationservice.NewPreferenceService(notificationservice.PreferenceParams{
		Log:    log,
		Config: cfg,
		Repo:   notifs,
	})
	dispatcher := notificationservice.NewDispatcher(notificationservice.DispatcherParams{
		Log:    log,
		Config: cfg,
		GenID:  node,
		Clock:  clock.SystemClock{},
		Repo:   notifs,
		Owners: owners,
		Email:  render.NewEmailRenderer(),
		Mailer: mailer.NoopSender{},
	})

	vitals := NewService(Params{
		Log:        log,
		GenID:      node,
		Clock:      clock.SystemClock{},
		Animals:    animals,
		Prefs:      prefs,
		Dispatcher: dispatcher,
	})

	return &vitalsFixture{
		db:      db,
		vitals:  vitals,
		animals: animals,
		notifs:  notifs,
		ownerID: ownerID,
		animal:  animal,
	}
}

func (f *vitalsFixture) update(hunger, happiness int) vitalsdomain.StatUpdate {
	return vitalsdomain.StatUpdate{
		HungerPercent:    hunger,
		HappinessPercent: happiness,
		IsOperable:       true,
		Source:           "api",
	}
}

func (f *vitalsFixture) notifications(t *testing.T) []notificationdomain.NotificationRecord {
	t.Helper()
	items, err := f.notifs.List(context.Background(), notificationdomain.ListFilter{OwnerID: f.ownerID})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	return items
}

func TestOnStatsUpdatedUnknownAnimal(t *testing.T) {
	f := setupVitalsFixture(t)

	created := f.vitals.OnStatsUpdated(context.Background(), 999999, f.update(80, 100))
	if created != 0 {
		t.Fatalf("unknown animal must create nothing, got %d", created)
	}
}

func TestOnStatsUpdatedHealthyReading(t *testing.T) {
	f := setupVitalsFixture(t)

	created := f.vitals.OnStatsUpdated(context.Background(), f.animal.ID, f.update(10, 90))
	if created != 0 {
		t.Fatalf("healthy reading must create nothing, got %d", created)
	}

	prev, err := f.animals.LatestSnapshot(context.Background(), f.animal.ID)
	if err != nil || prev == nil {
		t.Fatalf("expected snapshot recorded, got %v / %v", prev, err)
	}
	if prev.HungerPercent != 10 {
		t.Fatalf("snapshot hunger = %d, want 10", prev.HungerPercent)
	}
}

func TestOnStatsUpdatedHungerProgression(t *testing.T) {
	f := setupVitalsFixture(t)
	ctx := context.Background()

	// 60: below threshold.
	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(60, 100)); created != 0 {
		t.Fatalf("hunger 60 created %d, want 0", created)
	}
	// 80: crosses the alert threshold.
	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(80, 100)); created != 1 {
		t.Fatalf("hunger 80 created %d, want 1", created)
	}
	// 96: crosses the critical threshold; different category so the
	// cooldown on the plain hunger alert does not apply.
	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(96, 100)); created != 1 {
		t.Fatalf("hunger 96 created %d, want 1", created)
	}

	items := f.notifications(t)
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(items))
	}
	if items[0].Category != "critical_hunger" || items[1].Category != "hunger" {
		t.Fatalf("unexpected categories: %s, %s", items[0].Category, items[1].Category)
	}
}

func TestOnStatsUpdatedCooldownSuppressesRefire(t *testing.T) {
	f := setupVitalsFixture(t)
	ctx := context.Background()

	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(80, 100)); created != 1 {
		t.Fatalf("hunger 80 created %d, want 1", created)
	}
	// 85 re-fires the same category inside the cooldown window.
	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(85, 100)); created != 0 {
		t.Fatalf("hunger 85 inside cooldown created %d, want 0", created)
	}
}

func TestOnStatsUpdatedEqualHungerNoEvent(t *testing.T) {
	f := setupVitalsFixture(t)
	ctx := context.Background()

	f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(80, 100))
	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(80, 100)); created != 0 {
		t.Fatalf("unchanged hunger created %d, want 0", created)
	}
}

func TestOnStatsUpdatedInoperableEdge(t *testing.T) {
	f := setupVitalsFixture(t)
	ctx := context.Background()

	f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(50, 50))

	created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, vitalsdomain.StatUpdate{
		HungerPercent:    100,
		HappinessPercent: 0,
		IsOperable:       false,
		Source:           "api",
	})
	if created != 1 {
		t.Fatalf("inoperable edge created %d, want 1", created)
	}

	items := f.notifications(t)
	if items[0].Category != "became_inoperable" {
		t.Fatalf("expected became_inoperable, got %s", items[0].Category)
	}
}

func TestOnStatsUpdatedRetiredSuppression(t *testing.T) {
	f := setupVitalsFixture(t)
	ctx := context.Background()

	f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(10, 90))

	if err := f.db.Model(&animaldomain.Animal{}).
		Where("id = ?", f.animal.ID).
		Update("lifecycle_state", animaldomain.LifecycleRetired).Error; err != nil {
		t.Fatalf("retire animal: %v", err)
	}

	// Retirement edge fires once even with terrible vitals.
	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(100, 0)); created != 1 {
		t.Fatalf("retirement edge created %d, want 1", created)
	}
	items := f.notifications(t)
	if len(items) != 1 || items[0].Category != "became_retired" {
		t.Fatalf("expected single became_retired, got %v", items)
	}

	// Further readings stay silent.
	if created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(100, 0)); created != 0 {
		t.Fatalf("retired animal created %d, want 0", created)
	}
}

func TestOnStatsUpdatedBreedReady(t *testing.T) {
	f := setupVitalsFixture(t)
	ctx := context.Background()

	created := f.vitals.OnStatsUpdated(ctx, f.animal.ID, vitalsdomain.StatUpdate{
		HungerPercent:    10,
		HappinessPercent: 90,
		HeatPercent:      100,
		IsOperable:       true,
		IsBreedable:      true,
		Source:           "api",
	})
	if created != 1 {
		t.Fatalf("breed ready created %d, want 1", created)
	}
	if items := f.notifications(t); items[0].Category != "ready_to_breed" {
		t.Fatalf("expected ready_to_breed, got %s", items[0].Category)
	}
}

func TestOnStatsUpdatedSnapshotAlwaysAppended(t *testing.T) {
	f := setupVitalsFixture(t)
	ctx := context.Background()

	f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(10, 90))
	f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(20, 80))
	f.vitals.OnStatsUpdated(ctx, f.animal.ID, f.update(30, 70))

	var count int64
	if err := f.db.Model(&animaldomain.StatSnapshot{}).
		Where("animal_id = ?", f.animal.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 snapshots, got %d", count)
	}
}
