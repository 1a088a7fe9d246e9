//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"syscall/js"

	"klondike-lite/replay"
)

type initRequest struct {
	Spec replay.GameSpec `json:"spec"`
}

type initResponse struct {
	OK    bool                   `json:"ok"`
	Tape  *replay.WireReplayTape `json:"tape,omitempty"`
	Error *replay.ReplayError    `json:"error,omitempty"`
}

type inspectRequest struct {
	StateB64 string `json:"stateB64"`
}

type inspectResponse struct {
	OK         bool                `json:"ok"`
	State      *replay.StateView   `json:"state,omitempty"`
	LegalMoves []string            `json:"legalMoves,omitempty"`
	Error      *replay.ReplayError `json:"error,omitempty"`
}

func main() {
	js.Global().Set("__replayInit", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(initResponse{Error: missingPayload()})
		}
		return mustJSON(handleInit(args[0].String()))
	}))
	js.Global().Set("__replayInspect", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(inspectResponse{Error: missingPayload()})
		}
		return mustJSON(handleInspect(args[0].String()))
	}))

	select {}
}

func handleInit(raw string) initResponse {
	var req initRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return initResponse{Error: invalidJSON(err)}
	}

	tape, err := replay.GenerateReplayTape(req.Spec)
	if err != nil {
		return initResponse{Error: asReplayError(err, "replay_generation_failed")}
	}
	return initResponse{
		OK:   true,
		Tape: replay.ToWireReplayTape(tape),
	}
}

func handleInspect(raw string) inspectResponse {
	var req inspectRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return inspectResponse{Error: invalidJSON(err)}
	}
	got, err := replay.InspectState(req.StateB64)
	if err != nil {
		return inspectResponse{Error: asReplayError(err, "inspect_failed")}
	}
	return inspectResponse{OK: true, State: got.State, LegalMoves: got.LegalMoves}
}

func asReplayError(err error, fallbackReason string) *replay.ReplayError {
	var replayErr *replay.ReplayError
	if errors.As(err, &replayErr) {
		return replayErr
	}
	return &replay.ReplayError{StepIndex: -1, Reason: fallbackReason, Message: err.Error()}
}

func missingPayload() *replay.ReplayError {
	return &replay.ReplayError{StepIndex: -1, Reason: "invalid_request", Message: "missing request payload"}
}

func invalidJSON(err error) *replay.ReplayError {
	return &replay.ReplayError{StepIndex: -1, Reason: "invalid_json", Message: err.Error()}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		fallback := initResponse{
			Error: &replay.ReplayError{StepIndex: -1, Reason: "marshal_failed", Message: err.Error()},
		}
		b2, _ := json.Marshal(fallback)
		return string(b2)
	}
	return string(b)
}
