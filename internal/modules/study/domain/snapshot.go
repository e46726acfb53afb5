package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "studybuddy/internal/platform/errors"
)

type LoadStatus string

const (
	LoadStatusLoaded   LoadStatus = "loaded"
	LoadStatusFirstRun LoadStatus = "first_run"
	LoadStatusCorrupt  LoadStatus = "corrupt"
)

func EncodeSnapshot(doc Document) ([]byte, error) {
	if doc.Plans == nil {
		doc.Plans = []Plan{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []Session{}
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return payload, nil
}

// DecodeSnapshot parses an import payload. Text that is not JSON fails with
// ErrFormat. JSON that is not an object, lacks plans or sessions, or carries
// a field of the wrong shape fails with ErrSchema. Any other missing field
// takes its zero value.
func DecodeSnapshot(raw []byte) (Document, error) {
	fields, err := splitFields(raw)
	if err != nil {
		return Document{}, err
	}
	for _, required := range []string{"plans", "sessions"} {
		if _, ok := fields[required]; !ok {
			return Document{}, fmt.Errorf("%w: missing %q", apperrors.ErrSchema, required)
		}
	}
	return decodeFields(fields)
}

// DecodeStored parses the slot contents with the same defaulting as
// DecodeSnapshot but without requiring plans and sessions, since documents
// written by early versions only carried the streak fields.
func DecodeStored(raw []byte) (Document, error) {
	fields, err := splitFields(raw)
	if err != nil {
		return Document{}, err
	}
	return decodeFields(fields)
}

func splitFields(raw []byte) (map[string]json.RawMessage, error) {
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", apperrors.ErrFormat)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", apperrors.ErrSchema)
	}
	return fields, nil
}

func decodeFields(fields map[string]json.RawMessage) (Document, error) {
	doc := NewDocument()
	targets := []struct {
		key string
		dst any
	}{
		{"streak", &doc.Streak},
		{"totalHours", &doc.TotalHours},
		{"lastStudyDate", &doc.LastStudyDate},
		{"plans", &doc.Plans},
		{"sessions", &doc.Sessions},
	}
	for _, target := range targets {
		value, ok := fields[target.key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(value, target.dst); err != nil {
			return Document{}, fmt.Errorf("%w: field %q: %v", apperrors.ErrSchema, target.key, err)
		}
	}
	if doc.Plans == nil {
		doc.Plans = []Plan{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []Session{}
	}
	if doc.Streak < 0 {
		return Document{}, fmt.Errorf("%w: streak must be non-negative", apperrors.ErrSchema)
	}
	if doc.TotalHours < 0 {
		return Document{}, fmt.Errorf("%w: totalHours must be non-negative", apperrors.ErrSchema)
	}
	if err := checkEntries(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// checkEntries holds decoded plans and sessions to the same invariants the
// document enforces on AddPlan and RecordSession.
func checkEntries(doc Document) error {
	seen := make(map[string]struct{}, len(doc.Plans))
	for i, p := range doc.Plans {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: plans[%d]: %v", apperrors.ErrSchema, i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: plans[%d]: duplicate id %q", apperrors.ErrSchema, i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	for i, sess := range doc.Sessions {
		if sess.Duration <= 0 {
			return fmt.Errorf("%w: sessions[%d]: duration must be a positive number of minutes", apperrors.ErrSchema, i)
		}
	}
	return nil
}
