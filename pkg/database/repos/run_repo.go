package repos

import (
	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/xerror"
)

type RunRepository struct {
	DB GormWrapper
}

func (r *RunRepository) Create(run *models.Run) error {
	return r.DB.Create(run).Error()
}

func (r *RunRepository) FindByUUID(uuid string) (models.Run, error) {
	run := models.Run{}
	if err := r.DB.Where("uuid = ?", uuid).First(&run).Error(); err != nil {
		return run, xerror.Errorf("run of uuid %s not found", uuid)
	}

	return run, nil
}

// Latest returns up to limit runs of the given kind, newest first.
func (r *RunRepository) Latest(kind string, limit int) ([]models.Run, error) {
	runs := []models.Run{}
	if err := r.DB.Where("kind = ?", kind).Order("id desc").Limit(limit).Find(&runs).Error(); err != nil {
		return nil, xerror.Errorf("unable to list %s runs: %w", kind, err)
	}

	return runs, nil
}
