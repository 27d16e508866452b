package server

import (
	"context"
	"net/http"
	"strings"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	vitalsdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type updateStatsRequest struct {
	HungerPercent    int    `json:"hunger_percent"`
	HappinessPercent int    `json:"happiness_percent"`
	HeatPercent      int    `json:"heat_percent"`
	IsOperable       *bool  `json:"is_operable"`
	IsBreedable      bool   `json:"is_breedable"`
	Source           string `json:"source"`
}

type animalResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Species        string `json:"species"`
	LifecycleState string `json:"lifecycle_state"`
	BreedCount     int    `json:"breed_count"`
	BreedLimit     int    `json:"breed_limit"`
}

func toAnimalResponse(a *animaldomain.Animal) animalResponse {
	return animalResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Species:        a.Species,
		LifecycleState: string(a.LifecycleState),
		BreedCount:     a.BreedCount,
		BreedLimit:     a.BreedLimit,
	}
}

func (s *Server) animalIDFromPath(c *gin.Context) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "" {
		AbortWithError(c, newValidationError("id", "missing_id", "animal id is required"))
		return 0, false
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		AbortWithError(c, animaldomain.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func (s *Server) GetAnimal(c *gin.Context) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	animalID, ok := s.animalIDFromPath(c)
	if !ok {
		return
	}

	animal, err := s.animals.GetByID(c.Request.Context(), ownerID, animalID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAnimalResponse(animal))
}

// UpdateAnimalStats accepts a vitals reading and runs it through the
// evaluation engine. The response reports how many notifications the
// reading produced; a reading itself never fails.
func (s *Server) UpdateAnimalStats(c *gin.Context) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	animalID, ok := s.animalIDFromPath(c)
	if !ok {
		return
	}

	var req updateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Ownership check up front so a reading against someone else's animal
	// is rejected rather than silently dropped by the engine.
	if _, err := s.animals.GetByID(c.Request.Context(), ownerID, animalID); err != nil {
		AbortWithError(c, err)
		return
	}

	operable := true
	if req.IsOperable != nil {
		operable = *req.IsOperable
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "api"
	}

	created := s.vitals.OnStatsUpdated(c.Request.Context(), animalID, vitalsdomain.StatUpdate{
		HungerPercent:    req.HungerPercent,
		HappinessPercent: req.HappinessPercent,
		HeatPercent:      req.HeatPercent,
		IsOperable:       operable,
		IsBreedable:      req.IsBreedable,
		Source:           source,
	})

	c.JSON(http.StatusOK, gin.H{"notifications_created": created})
}

func (s *Server) RetireAnimal(c *gin.Context) {
	s.transitionAnimal(c, s.animals.Retire)
}

func (s *Server) ArchiveAnimal(c *gin.Context) {
	s.transitionAnimal(c, s.animals.Archive)
}

func (s *Server) transitionAnimal(c *gin.Context, transition func(ctx context.Context, ownerID, id snowflake.ID) (*animaldomain.Animal, error)) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	animalID, ok := s.animalIDFromPath(c)
	if !ok {
		return
	}

	animal, err := transition(c.Request.Context(), ownerID, animalID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAnimalResponse(animal))
}
