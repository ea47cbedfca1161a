package gateway

// Backend error payload handling. The deployed backend answers
// {"error": code, "message": msg, "details": [...]} while older variants
// use FastAPI's default {"detail": ...} where detail is either a plain
// string or a list of field errors with loc/msg entries. Both shapes
// normalize here so gateway operations see one contract.

import (
	"encoding/json"
	"fmt"
)

type errorPayload struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
	Detail  json.RawMessage `json:"detail"`
}

type fieldDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// errorMessage extracts a human-readable message from the response body,
// falling back to the given default when no recognized shape matches.
func (r *response) errorMessage(fallback string) string {
	var payload errorPayload
	if err := json.Unmarshal(r.body, &payload); err != nil {
		return fallback
	}
	if payload.Message != "" {
		return payload.Message
	}
	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
			return s
		}
	}
	return fallback
}

// fieldErrors extracts a field→message map from a structured validation
// payload, or nil when the body carries no recognizable field errors.
func (r *response) fieldErrors() map[string]string {
	var payload errorPayload
	if err := json.Unmarshal(r.body, &payload); err != nil {
		return nil
	}

	raw := payload.Details
	if len(raw) == 0 {
		raw = payload.Detail
	}
	if len(raw) == 0 {
		return nil
	}

	var details []fieldDetail
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil
	}

	fields := make(map[string]string, len(details))
	for _, d := range details {
		if len(d.Loc) == 0 || d.Msg == "" {
			continue
		}
		// loc is ["body", "email"]; the last element names the field.
		field := fmt.Sprintf("%v", d.Loc[len(d.Loc)-1])
		if field == "" || field == "body" {
			continue
		}
		fields[field] = d.Msg
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
