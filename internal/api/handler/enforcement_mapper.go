package handler

import (
	"time"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

// timeLayout is the serialization format the legacy client expects,
// rendered in server-local time.
const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toSpotResponse(v ports.SpotView) spotResponse {
	return spotResponse{
		IDVaga:       v.ID,
		HoraEntrada:  formatTime(v.EntryTime),
		HoraSaida:    formatTimePtr(v.ExitTime),
		PlacaDoCarro: v.Plate,
	}
}

func recordToSpotResponse(rec *domain.ParkingRecord) *spotResponse {
	if rec == nil {
		return nil
	}
	return &spotResponse{
		IDVaga:       rec.ID,
		HoraEntrada:  formatTime(rec.EntryTime),
		HoraSaida:    formatTimePtr(rec.ExitTime),
		PlacaDoCarro: rec.Plate,
	}
}
