package klondike

import (
	"errors"
	"fmt"

	"klondike-lite/card"
)

var (
	ErrInvalidCard      = card.ErrInvalidCard
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrIllegalMove      = errors.New("illegal move")
	ErrEmptyHistory     = errors.New("move history is empty")
)

// Reasons carried by IllegalMoveError.
const (
	ReasonCardNotReachable      = "card_not_reachable"
	ReasonNoDestination         = "no_destination"
	ReasonRejected              = "rejected"
	ReasonInvalidSequence       = "invalid_sequence"
	ReasonPreconditionViolation = "precondition_violation"
	ReasonStockReceive          = "stock_receive"
)

// IllegalMoveError is a well-formed request that the rules refuse. It matches ErrIllegalMove.
type IllegalMoveError struct {
	Reason  string
	Card    card.Card
	Message string
}

func (e *IllegalMoveError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("illegal move(reason=%s card=%v): %s", e.Reason, e.Card, e.Message)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }

func illegalMove(reason string, c card.Card, format string, args ...any) error {
	return &IllegalMoveError{Reason: reason, Card: c, Message: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
