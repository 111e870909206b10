package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		typeCode int
		sign     int
		lineType int
		want     Result
	}{
		{
			name:     "wholesale sale",
			typeCode: TypeWholesaleSale,
			sign:     0,
			lineType: LineTypeGoods,
			want:     Result{Category: Sale, Direction: Inflow, MovesStock: true},
		},
		{
			name:     "retail sale service line",
			typeCode: TypeRetailSale,
			sign:     0,
			lineType: LineTypeService,
			want:     Result{Category: Sale, Direction: Inflow, MovesStock: false},
		},
		{
			name:     "sale with credit sign is a reversal",
			typeCode: TypeWholesaleSale,
			sign:     1,
			lineType: LineTypeGoods,
			want:     Result{Category: Sale, Direction: Outflow, Reversed: true, MovesStock: true},
		},
		{
			name:     "wholesale sale return code",
			typeCode: TypeWholesaleSaleReturn,
			sign:     1,
			lineType: LineTypeGoods,
			want:     Result{Category: Sale, Direction: Outflow, Reversed: true, MovesStock: true},
		},
		{
			name:     "purchase receipt",
			typeCode: TypePurchaseReceipt,
			sign:     1,
			lineType: LineTypeGoods,
			want:     Result{Category: Purchase, Direction: Outflow, MovesStock: true},
		},
		{
			name:     "purchase return",
			typeCode: TypePurchaseReturn,
			sign:     0,
			lineType: LineTypeGoods,
			want:     Result{Category: Purchase, Direction: Inflow, Reversed: true, MovesStock: true},
		},
		{
			name:     "purchase discount line never moves stock",
			typeCode: TypePurchaseReceipt,
			sign:     1,
			lineType: LineTypeDiscount,
			want:     Result{Category: Purchase, Direction: Outflow, MovesStock: false},
		},
		{
			name:     "collection",
			typeCode: TypeCollection,
			sign:     0,
			lineType: LineTypeService,
			want:     Result{Category: PaymentIn, Direction: Inflow},
		},
		{
			name:     "payment",
			typeCode: TypePayment,
			sign:     1,
			lineType: LineTypeService,
			want:     Result{Category: PaymentOut, Direction: Outflow},
		},
		{
			name:     "warehouse transfer has no direction",
			typeCode: TypeWarehouseTransfer,
			sign:     0,
			lineType: LineTypeGoods,
			want:     Result{Category: Transfer, Direction: DirectionNone},
		},
		{
			name:     "unknown code",
			typeCode: 999,
			sign:     0,
			lineType: LineTypeGoods,
			want:     Result{Category: Unclassified, Direction: DirectionNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.typeCode, tt.sign, tt.lineType)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "sale", Sale.String())
	assert.Equal(t, "purchase", Purchase.String())
	assert.Equal(t, "payment-in", PaymentIn.String())
	assert.Equal(t, "payment-out", PaymentOut.String())
	assert.Equal(t, "transfer", Transfer.String())
	assert.Equal(t, "unclassified", Unclassified.String())
}

func TestGoodsAndServiceClassifyAlike(t *testing.T) {
	// Turnover-wise the two line types are identical; they differ only
	// in stock movement.
	goods := Classify(TypeWholesaleSale, 0, LineTypeGoods)
	service := Classify(TypeWholesaleSale, 0, LineTypeService)

	assert.Equal(t, goods.Category, service.Category)
	assert.Equal(t, goods.Direction, service.Direction)
	assert.True(t, goods.MovesStock)
	assert.False(t, service.MovesStock)
}
