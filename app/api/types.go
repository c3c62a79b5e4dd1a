package api

import (
	"github.com/BigPhill11/market-brief/app/database"
	"github.com/BigPhill11/market-brief/app/headline"
	"github.com/BigPhill11/market-brief/app/tasks"
)

type Handler struct {
	pipeline     *headline.Pipeline
	snapshotRepo database.SnapshotRepository
	scheduler    tasks.TaskSchedulerInterface
	provider     string
}
