package worker

import (
	"github.com/wholesale-hub/wholesale-service/internal/service"
)

// StartEventRelay registers the broker relay handlers.
func StartEventRelay(relay *service.EventRelayService) {
	if relay == nil {
		return
	}
	relay.RegisterHandlers()
}
