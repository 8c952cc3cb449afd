package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchCriteria_IsEmpty(t *testing.T) {
	active := false
	tests := []struct {
		name     string
		criteria SearchCriteria
		want     bool
	}{
		{"zero value", SearchCriteria{}, true},
		{"blank strings", SearchCriteria{Number: "  ", ClientName: "\t"}, true},
		{"number only", SearchCriteria{Number: "X"}, false},
		{"active false counts", SearchCriteria{Active: &active}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.IsEmpty())
		})
	}
}

func TestSearchCriteria_Payload(t *testing.T) {
	active := true
	c := SearchCriteria{ClientName: " Diop ", Active: &active}

	assert.Equal(t, map[string]any{"client_nom": "Diop", "actif": true}, c.Payload())
	assert.Empty(t, SearchCriteria{}.Payload())
}

func TestMeter_Record(t *testing.T) {
	clientID := uint(7)
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	m := Meter{
		Number:    "CPT123456",
		ClientID:  &clientID,
		Client:    &Client{Name: "Diop", FirstName: "Awa", Phone: "771234567", Address: "Dakar"},
		Active:    true,
		CreatedOn: created,
		Source:    SourceMaxit,
	}

	rec := m.Record()

	assert.Equal(t, "CPT123456", rec.Number)
	assert.Equal(t, "7", rec.ClientID)
	assert.Equal(t, "Diop", rec.ClientName)
	assert.Equal(t, "Awa", rec.ClientFirstName)
	assert.Equal(t, created, rec.CreatedAt)
	assert.Equal(t, SourceLocal, rec.Source)
	assert.Nil(t, rec.SyncedAt)
}

func TestMeterRecord_Raw(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	raw := MeterRecord{Number: "CPT1", Active: false, CreatedAt: created}.Raw()

	assert.Equal(t, "CPT1", raw["numero"])
	assert.Equal(t, false, raw["actif"])
	assert.Equal(t, "2024-05-01T08:00:00Z", raw["date_creation"])
	_, hasClient := raw["client_id"]
	assert.False(t, hasClient)
}
