// Package queue publishes filings to the downstream processors. Kafka is used
// when brokers are configured; the in-memory queue serves tests and local runs.
package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	specVersion = "1.0"
	source      = "/lear/filings"
	// FilingEventType marks a filing handed to a processor.
	FilingEventType = "bc.registry.business.filing"
)

// Envelope is the CloudEvents-shaped record value.
type Envelope struct {
	SpecVersion string    `json:"specversion"`
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Type        string    `json:"type"`
	Time        time.Time `json:"time"`
	Data        Data      `json:"data"`
}

type Data struct {
	FilingMessage FilingMessage `json:"filingMessage"`
}

type FilingMessage struct {
	FilingIdentifier int64 `json:"filingIdentifier"`
}

// EncodeFiling builds the record value announcing filingID.
func EncodeFiling(filingID int64, now time.Time) ([]byte, error) {
	return json.Marshal(Envelope{
		SpecVersion: specVersion,
		ID:          uuid.NewString(),
		Source:      source,
		Type:        FilingEventType,
		Time:        now.UTC(),
		Data:        Data{FilingMessage: FilingMessage{FilingIdentifier: filingID}},
	})
}
