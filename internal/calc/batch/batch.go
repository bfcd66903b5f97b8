// Package batch designs several beams in one request.
package batch

import (
	"errors"
	"fmt"

	"CivilBot/internal/calc/beam"
)

var ErrNoItems = errors.New("no items")

type BeamBatchInput struct {
	Items []beam.Request `json:"items"`
}

type BeamBatchResult struct {
	Results []beam.Result `json:"results"`
}

// ItemError reports the first item that failed; Index is zero based.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index+1, e.Err) }

func (e *ItemError) Unwrap() error { return e.Err }

// CalculateBeam designs every item with policy and stops at the first failure.
func CalculateBeam(in BeamBatchInput, policy beam.Policy) (BeamBatchResult, error) {
	if len(in.Items) == 0 {
		return BeamBatchResult{}, ErrNoItems
	}
	out := BeamBatchResult{Results: make([]beam.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		spec, err := item.Resolve()
		if err != nil {
			return BeamBatchResult{}, &ItemError{Index: i, Err: err}
		}
		res, err := beam.Design(spec, policy)
		if err != nil {
			return BeamBatchResult{}, &ItemError{Index: i, Err: err}
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
