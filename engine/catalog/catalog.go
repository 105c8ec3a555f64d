// Package catalog loads vehicle and maintenance data from external sources
// and hands the dispatcher complete snapshots. A source failure never
// touches the snapshot currently in service; the dispatcher keeps serving
// the previous generation and the reload is rejected.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

// ErrLoad wraps every catalog source failure.
var ErrLoad = errors.New("catalog load failed")

// Snapshot is one complete catalog generation.
type Snapshot struct {
	Vehicles []domain.Vehicle           `json:"vehicles"`
	Records  []domain.MaintenanceRecord `json:"maintenance_records"`
}

// Source provides catalog snapshots. Implementations must return either a
// complete snapshot or an error, never a partial one.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}

// Reloader is the dispatcher-side hook a catalog feeds into.
type Reloader interface {
	ReloadCatalog(vehicles []domain.Vehicle, records []domain.MaintenanceRecord) error
}

// Refresh pulls a snapshot from the source and swaps it into the reloader.
func Refresh(ctx context.Context, src Source, r Reloader) error {
	snap, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if err := r.ReloadCatalog(snap.Vehicles, snap.Records); err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return nil
}

// dateFormats are the accepted maintenance record date encodings, tried in
// order.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
