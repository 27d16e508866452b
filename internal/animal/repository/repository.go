package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type animalRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func Provide(db *gorm.DB, log *zap.Logger) domain.Repository {
	return &animalRepository{db: db, log: log.Named("animal.repository")}
}

func (r *animalRepository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Animal, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	var animal domain.Animal
	err := r.db.WithContext(ctx).First(&animal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *animalRepository) LatestSnapshot(ctx context.Context, animalID snowflake.ID) (*domain.StatSnapshot, error) {
	var snap domain.StatSnapshot
	err := r.db.WithContext(ctx).
		Where("animal_id = ?", animalID).
		Order("recorded_at DESC, id DESC").
		Limit(1).
		Take(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *animalRepository) AppendSnapshot(ctx context.Context, snap *domain.StatSnapshot) error {
	err := r.db.WithContext(ctx).Create(snap).Error
	if err == nil {
		return nil
	}

	// Older deployments may lack optional columns. Fall back to the core
	// column set rather than losing the snapshot.
	r.log.Warn("full snapshot insert failed, retrying with core columns",
		zap.String("animal_id", snap.AnimalID.String()),
		zap.Error(err),
	)
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO stat_snapshots
		 (id, animal_id, hunger_percent, happiness_percent, heat_percent,
		  is_operable, is_breedable, lifecycle_state, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID,
		snap.AnimalID,
		snap.HungerPercent,
		snap.HappinessPercent,
		snap.HeatPercent,
		snap.IsOperable,
		snap.IsBreedable,
		snap.LifecycleState,
		snap.RecordedAt,
	).Error
}

func (r *animalRepository) SetLifecycle(ctx context.Context, id snowflake.ID, from, to domain.LifecycleState) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE animals
		 SET lifecycle_state = ?, updated_at = ?
		 WHERE id = ? AND lifecycle_state = ?`,
		to,
		time.Now().UTC(),
		id,
		from,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *animalRepository) ListDueForDecay(ctx context.Context, cutoff time.Time, now time.Time, limit int) ([]domain.Animal, error) {
	if limit <= 0 {
		limit = 100
	}

	var candidates []domain.Animal
	err := r.db.WithContext(ctx).
		Where("lifecycle_state = ? AND last_decay_at <= ?", domain.LifecycleActive, cutoff).
		Order("last_decay_at ASC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	// Claim each candidate with a guarded update so concurrent sweepers
	// never process the same animal twice.
	claimed := make([]domain.Animal, 0, len(candidates))
	for _, animal := range candidates {
		result := r.db.WithContext(ctx).Exec(
			`UPDATE animals
			 SET last_decay_at = ?
			 WHERE id = ? AND last_decay_at = ?`,
			now,
			animal.ID,
			animal.LastDecayAt,
		)
		if result.Error != nil {
			return claimed, result.Error
		}
		if result.RowsAffected > 0 {
			claimed = append(claimed, animal)
		}
	}
	return claimed, nil
}

func (r *animalRepository) CountDueForDecay(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Animal{}).
		Where("lifecycle_state = ? AND last_decay_at <= ?", domain.LifecycleActive, cutoff).
		Count(&count).Error
	return count, err
}
