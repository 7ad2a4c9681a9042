package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestMovementType_Apply_TablaDeSignos(t *testing.T) {
	cases := []struct {
		typ    entity.MovementType
		before int
		qty    int
		after  int
	}{
		{entity.MovementPurchase, 5, 10, 15},
		{entity.MovementReturn, 0, 3, 3},
		{entity.MovementSale, 10, 4, 6},
		{entity.MovementAdjustment, 10, 10, 0},
		{entity.MovementTransfer, 7, 2, 5},
		{entity.MovementLoss, 1, 1, 0},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			after, err := tc.typ.Apply(tc.before, tc.qty)
			require.NoError(t, err)
			assert.Equal(t, tc.after, after)
			assert.Equal(t, tc.typ.Signed(tc.qty), after-tc.before)
		})
	}
}

func TestMovementType_Apply_RechazaNegativo(t *testing.T) {
	for _, typ := range []entity.MovementType{
		entity.MovementSale, entity.MovementAdjustment, entity.MovementTransfer, entity.MovementLoss,
	} {
		after, err := typ.Apply(2, 3)
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock), string(typ))
		assert.Equal(t, 2, after, "la existencia no debe cambiar")
	}
}

func TestParseMovementType(t *testing.T) {
	typ, err := entity.ParseMovementType("return")
	require.NoError(t, err)
	assert.True(t, typ.Increases())

	_, err = entity.ParseMovementType("gift")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
