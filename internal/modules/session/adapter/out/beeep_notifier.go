package out

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"tempo/internal/modules/session/domain"
	sessionout "tempo/internal/modules/session/port/out"
)

// BeeepNotifier raises a desktop notification when a session completes.
type BeeepNotifier struct{}

func NewBeeepNotifier() sessionout.Notifier {
	beeep.AppName = "tempo"
	return BeeepNotifier{}
}

func (BeeepNotifier) SessionCompleted(session domain.Session) error {
	title := fmt.Sprintf("Session #%d completed", session.Number)
	body := fmt.Sprintf("Focused for %s", session.Duration().Round(time.Second))
	if session.Tag != "" {
		body += " on " + session.Tag
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
