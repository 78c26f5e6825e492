package order

import "errors"

// Status is the lifecycle state of an order. Orders start PLACED and move
// through procurement to delivery.
type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusProcuring Status = "PROCURING"
	StatusOnTheWay  Status = "ON_THE_WAY"
	StatusDelivered Status = "DELIVERED"
)

var ErrUnknownStatus = errors.New("unknown order status")

// ParseStatus validates a wire-level status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlaced, StatusProcuring, StatusOnTheWay, StatusDelivered:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

func (s Status) String() string {
	return string(s)
}
