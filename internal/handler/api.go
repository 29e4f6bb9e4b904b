package handler

import (
	"github.com/energyledger/internal/service"
	"github.com/energyledger/internal/store"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store      *store.Store
	activities *service.ActivityService
	days       *service.DayService
	summaries  *service.SummaryService
	theme      *service.ThemeService
	exports    *service.ExportService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	st := store.New(gdb)
	activityService := service.NewActivityService(st)
	dayService := service.NewDayService(st)
	themeService := service.NewThemeService(st)

	return &API{
		store:      st,
		activities: activityService,
		days:       dayService,
		summaries:  service.NewSummaryService(dayService, activityService),
		theme:      themeService,
		exports:    service.NewExportService(st, dayService, activityService, themeService),
	}
}
