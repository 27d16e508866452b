// Package seed bootstraps a demo owner and a small herd for local
// development. Production environments never seed.
package seed

import (
	"context"
	"errors"
	"time"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	ownerdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/owner/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/owner/token"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@farmheart.local"

	// Dev-only token secret. The full bearer token is "<owner_id>.<secret>".
	demoTokenSecret = "demo-token"
)

var demoAnimals = []struct {
	Name    string
	Species string
}{
	{Name: "Clover", Species: "cow"},
	{Name: "Biscuit", Species: "chicken"},
	{Name: "Maple", Species: "horse"},
}

// EnsureDemoHerd creates the demo owner and animals if they are missing.
// Safe to run on every startup.
func EnsureDemoHerd(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if cfg.IsProduction() {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := ensureDemoOwnerTx(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureDemoAnimalsTx(ctx, tx, node, owner.ID)
	})
}

func ensureDemoOwnerTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (ownerdomain.Owner, error) {
	var owner ownerdomain.Owner
	err := tx.WithContext(ctx).Where("username = ?", demoUsername).First(&owner).Error
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return owner, err
	}

	hashed, err := token.Hash(demoTokenSecret)
	if err != nil {
		return owner, err
	}

	now := time.Now().UTC()
	owner = ownerdomain.Owner{
		ID:           node.Generate(),
		Username:     demoUsername,
		Email:        demoEmail,
		APITokenHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(&owner).Error; err != nil {
		return owner, err
	}
	return owner, nil
}

func ensureDemoAnimalsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, ownerID snowflake.ID) error {
	for _, spec := range demoAnimals {
		var existing animaldomain.Animal
		err := tx.WithContext(ctx).
			Where("owner_id = ? AND name = ?", ownerID, spec.Name).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		animal := animaldomain.Animal{
			ID:             node.Generate(),
			OwnerID:        ownerID,
			Name:           spec.Name,
			Species:        spec.Species,
			LifecycleState: animaldomain.LifecycleActive,
			BreedLimit:     5,
			LastDecayAt:    now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.WithContext(ctx).Create(&animal).Error; err != nil {
			return err
		}
	}
	return nil
}
