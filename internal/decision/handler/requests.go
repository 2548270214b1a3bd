package handler

import (
	"arbiter/internal/decision"
)

// EvaluateRequest is the wire shape of POST /decision/evaluate. Urgency
// arrives as a free string and is normalized during validation.
type EvaluateRequest struct {
	Module    string               `json:"module"`
	Operation string               `json:"operation"`
	Actor     string               `json:"actor"`
	Data      decision.RequestData `json:"data"`
}

// Validate checks required fields and normalizes the urgency value.
func (r *EvaluateRequest) Validate() error {
	urgency, err := decision.ParseUrgency(string(r.Data.Urgency))
	if err != nil {
		return err
	}
	r.Data.Urgency = urgency

	return decision.DecisionRequest{
		Module:    r.Module,
		Operation: r.Operation,
		Actor:     r.Actor,
	}.Validate()
}

// toDomain converts the validated request to the engine's input type.
func (r *EvaluateRequest) toDomain() decision.DecisionRequest {
	return decision.DecisionRequest{
		Module:    r.Module,
		Operation: r.Operation,
		Actor:     r.Actor,
		Data:      r.Data,
	}
}
