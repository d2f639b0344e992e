package worker

import (
	"github.com/spec-kit/sla-monitor/internal/notify"
)

// StartAlertWorker registers notification delivery handlers.
func StartAlertWorker(notifyService *notify.Service) {
	if notifyService == nil {
		return
	}
	notifyService.RegisterHandlers()
}
