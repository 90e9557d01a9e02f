package inventory

import (
	"math"
	"strings"
	"time"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type MoveType string

const (
	MoveReceiving MoveType = "receiving"
	MoveIssuance  MoveType = "issuance"
)

func (t MoveType) Valid() bool { return t == MoveReceiving || t == MoveIssuance }

// Transaction is a stock movement against a material code. MaterialDescription
// is a snapshot taken when the movement was recorded and is never rewritten.
type Transaction struct {
	ID                  string    `json:"id"`
	MaterialCode        string    `json:"materialCode"`
	MaterialDescription string    `json:"materialDescription"`
	Type                MoveType  `json:"transactionType"`
	Quantity            float64   `json:"quantity"`
	Unit                string    `json:"unit"`
	Date                time.Time `json:"date"`
	User                string    `json:"user"`
	Reference           string    `json:"reference"`
	Notes               string    `json:"notes,omitempty"`
}

// Delta is the signed effect of the movement on the material quantity.
func (t Transaction) Delta() float64 {
	if t.Type == MoveIssuance {
		return -t.Quantity
	}
	return t.Quantity
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.MaterialCode) == "" {
		return apperrors.Validation("materialCode", "required")
	}
	if !t.Type.Valid() {
		return apperrors.Validation("transactionType", "must be receiving or issuance")
	}
	if math.IsNaN(t.Quantity) || math.IsInf(t.Quantity, 0) || t.Quantity <= 0 {
		return apperrors.Validation("quantity", "must be > 0")
	}
	return nil
}
