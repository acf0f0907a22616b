package model

import "github.com/trknhr/cooktime/internal/logger"

// DrainAndLogEvents consumes init events for callers that do not display
// them and returns the detail of the last ready event.
func DrainAndLogEvents(ch <-chan ModelInitEvent) string {
	var detail string
	for ev := range ch {
		if ev.Status == ModelError {
			logger.Warn("[%s] model init failed: %v", ev.Name, ev.Err)
			continue
		}
		logger.Debug("[%s] model %s: %s", ev.Name, ev.Status, ev.Detail)
		detail = ev.Detail
	}
	return detail
}
