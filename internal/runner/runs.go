package runner

import (
	"time"

	"github.com/tauraamui/dragonframes/pkg/configdef"
	"github.com/tauraamui/dragonframes/pkg/database"
	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/dragonframes/pkg/database/repos"
	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/tauraamui/xerror"
)

var ErrInvalidRunQuery = xerror.New("invalid run query")

// ListRuns prints up to limit recorded runs of kind, newest first.
func ListRuns(values configdef.Values, kind string, limit int) ([]models.Run, error) {
	switch kind {
	case models.KindExtract, models.KindRename:
	default:
		return nil, xerror.Errorf("%w: unknown run kind %q", ErrInvalidRunQuery, kind)
	}
	if limit <= 0 {
		return nil, xerror.Errorf("%w: limit must be positive, got %d", ErrInvalidRunQuery, limit)
	}

	db, err := database.Connect(values.DatabasePath)
	if err != nil {
		return nil, err
	}
	defer closeDB(db)

	runRepo := repos.RunRepository{DB: db}
	runs, err := runRepo.Latest(kind, limit)
	if err != nil {
		return nil, err
	}

	if len(runs) == 0 {
		log.Info("No %s runs recorded", kind)
		return runs, nil
	}

	for _, run := range runs {
		printRun(run)
	}
	return runs, nil
}

// ShowRun prints the single recorded run with the given id.
func ShowRun(values configdef.Values, uuid string) (models.Run, error) {
	if len(uuid) == 0 {
		return models.Run{}, xerror.Errorf("%w: run id is required", ErrInvalidRunQuery)
	}

	db, err := database.Connect(values.DatabasePath)
	if err != nil {
		return models.Run{}, err
	}
	defer closeDB(db)

	runRepo := repos.RunRepository{DB: db}
	run, err := runRepo.FindByUUID(uuid)
	if err != nil {
		return run, err
	}

	printRun(run)
	return run, nil
}

func printRun(run models.Run) {
	status := "ok"
	if run.Failed {
		status = "failed: " + run.ErrorMsg
	}
	printf("%s  %s  %-7s  %s -> %s  %d frames  %s\n",
		run.CreatedAt.Format(time.RFC3339), run.UUID, run.Kind, run.Source, run.Target, run.Count, status)
}

func closeDB(db repos.GormWrapper) {
	if err := db.Close(); err != nil {
		log.Warn("unable to close db connection: %s", err.Error())
	}
}
