package amqp

import (
	"encoding/json"
	"time"
)

// ReportGeneratedMessage announces that a report was produced and, when a
// name is present, where its artifact landed.
type ReportGeneratedMessage struct {
	Kind      string    `json:"kind"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportGeneratedMessage(kind, name string) *ReportGeneratedMessage {
	return &ReportGeneratedMessage{
		Kind:      kind,
		Name:      name,
		Timestamp: time.Now(),
	}
}

func (m *ReportGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportGeneratedMessageFromJSON(data []byte) (*ReportGeneratedMessage, error) {
	var msg ReportGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
