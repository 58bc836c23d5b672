package validators

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
)

// ParseZone reads the zone query parameter, defaulting to capital.
func ParseZone(r *http.Request) (enums.Zone, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("zone"))
	if raw == "" {
		return enums.ZoneCapital, nil
	}
	zone, err := enums.ParseZone(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown zone").WithDetails(map[string]any{"field": "zone", "value": raw})
	}
	return zone, nil
}

// ParseServiceType reads the service_type query parameter, defaulting to pickup.
func ParseServiceType(r *http.Request) (enums.ServiceType, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("service_type"))
	if raw == "" {
		return enums.ServiceTypePickup, nil
	}
	st, err := enums.ParseServiceType(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown service type").WithDetails(map[string]any{"field": "service_type", "value": raw})
	}
	return st, nil
}

// ParseAt reads the optional RFC3339 `at` parameter; absent means now.
func ParseAt(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("at"))
	if raw == "" {
		return time.Now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "at must be an RFC3339 timestamp").WithDetails(map[string]any{"field": "at", "value": raw})
	}
	return at, nil
}

// ParseUUIDParam parses a uuid out of a path or query value.
func ParseUUIDParam(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "must be a valid uuid").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
