package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

func TestTransaction_Delta(t *testing.T) {
	assert.Equal(t, 100.0, Transaction{Type: MoveReceiving, Quantity: 100}.Delta())
	assert.Equal(t, -30.0, Transaction{Type: MoveIssuance, Quantity: 30}.Delta())
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{"receiving", Transaction{MaterialCode: "X1", Type: MoveReceiving, Quantity: 1}, false},
		{"issuance", Transaction{MaterialCode: "X1", Type: MoveIssuance, Quantity: 0.5}, false},
		{"zero quantity", Transaction{MaterialCode: "X1", Type: MoveReceiving}, true},
		{"negative quantity", Transaction{MaterialCode: "X1", Type: MoveIssuance, Quantity: -3}, true},
		{"unknown type", Transaction{MaterialCode: "X1", Type: "transfer", Quantity: 1}, true},
		{"no material", Transaction{Type: MoveReceiving, Quantity: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
