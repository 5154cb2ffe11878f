package dto

import "time"

// SettlePaymentRequest carries the value date of a cashing or deposit operation.
type SettlePaymentRequest struct {
	Date time.Time `json:"date" binding:"required"`
}
