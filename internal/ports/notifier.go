package ports

import (
	"context"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// DealNotification describes a completed deal for an outside observer.
type DealNotification struct {
	SessionID string
	Seed      string
	Hand      domain.Hand
}

// Notifier reports deals to an external sink. Delivery is best effort.
type Notifier interface {
	NotifyDeal(ctx context.Context, n DealNotification) error
}
