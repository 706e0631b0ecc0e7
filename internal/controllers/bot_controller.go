package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"archivebot/internal/bot/interfaces"
	"archivebot/internal/providers"
	"archivebot/internal/services"
)

type BotController struct {
	logger    providers.Logger
	service   services.ArchiveServiceInterface
	scheduler interfaces.SchedulerInterface
	cache     providers.CacheProviderInterface
}

func NewBotController(logger providers.Logger, service services.ArchiveServiceInterface, scheduler interfaces.SchedulerInterface, cache providers.CacheProviderInterface) *BotController {
	return &BotController{
		logger:    logger,
		service:   service,
		scheduler: scheduler,
		cache:     cache,
	}
}

func (bc *BotController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := bc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	bc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (bc *BotController) GetReports(w http.ResponseWriter, r *http.Request) {
	bc.serveFromCacheOrCompute(w, "reports", func() (any, error) {
		return bc.service.GetReports(), nil
	})
}

func (bc *BotController) GetReport(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	if page == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	report, ok := bc.service.GetReport(page)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	gson, err := json.Marshal(report)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// TriggerRun starts a batch in the background and returns immediately.
func (bc *BotController) TriggerRun(w http.ResponseWriter, r *http.Request) {
	if bc.service.IsRunning() {
		http.Error(w, "Conflict: batch already running", http.StatusConflict)
		return
	}
	bc.logger.Infof(providers.TypeApp, "Batch triggered via API")
	go bc.scheduler.RunNow()
	w.WriteHeader(http.StatusAccepted)
}
