// Package classify maps a transaction line's type code, sign flag and
// line type to its semantic category and direction of money.
//
// The lookup table in this package is the single source of truth for
// what a type code means. No other package re-derives "is this a sale"
// from raw codes; call Classify instead.
package classify

// Category is the semantic kind of a ledger line.
type Category int

const (
	Unclassified Category = iota
	Sale
	Purchase
	PaymentIn
	PaymentOut
	Transfer
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case Sale:
		return "sale"
	case Purchase:
		return "purchase"
	case PaymentIn:
		return "payment-in"
	case PaymentOut:
		return "payment-out"
	case Transfer:
		return "transfer"
	default:
		return "unclassified"
	}
}

// Direction is the direction of money relative to the firm.
type Direction int

const (
	DirectionNone Direction = iota
	Inflow
	Outflow
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Inflow:
		return "inflow"
	case Outflow:
		return "outflow"
	default:
		return "none"
	}
}

// Line type values as stored on a transaction line. Goods and service
// lines classify identically for turnover; only goods lines move stock
// quantity. Discount lines carry monetary corrections and never move
// stock.
const (
	LineTypeGoods    = 0
	LineTypeService  = 1
	LineTypeDiscount = 2
)

// Transaction type codes per the backing store's convention.
// Codes 1-9 are stock movements, 25 is a warehouse transfer,
// 70-71 are account vouchers (collections and payments).
const (
	TypePurchaseReceipt     = 1
	TypeRetailSaleReturn    = 2
	TypeWholesaleSaleReturn = 3
	TypePurchaseReturn      = 6
	TypeRetailSale          = 7
	TypeWholesaleSale       = 8
	TypeWarehouseTransfer   = 25
	TypeCollection          = 70
	TypePayment             = 71
)

// categories is the classification lookup table. A code missing here
// classifies as Unclassified: it still counts toward gross totals but
// is excluded from every typed breakdown and ranking.
var categories = map[int]Category{
	TypePurchaseReceipt:     Purchase,
	TypePurchaseReturn:      Purchase,
	TypeRetailSale:          Sale,
	TypeRetailSaleReturn:    Sale,
	TypeWholesaleSale:       Sale,
	TypeWholesaleSaleReturn: Sale,
	TypeWarehouseTransfer:   Transfer,
	TypeCollection:          PaymentIn,
	TypePayment:             PaymentOut,
}

// naturalSign is the sign flag a category's regular lines carry:
// sales are debit lines, purchases credit lines. A line whose sign
// flag disagrees with its category's natural sign is a reversal
// (a return) and moves money the opposite way.
var naturalSign = map[Category]int{
	Sale:     0, // SignDebit
	Purchase: 1, // SignCredit
}

// Result is the classification of a single line.
type Result struct {
	Category  Category
	Direction Direction
	// Reversed marks return lines: sale or purchase lines whose sign
	// flag is flipped against the category's natural sign.
	Reversed bool
	// MovesStock marks goods lines of stock-moving categories; only
	// these change a product's stock level.
	MovesStock bool
}

// Classify maps one line's (typeCode, sign, lineType) triple to its
// category and direction. It is a pure function of its inputs.
func Classify(typeCode, sign, lineType int) Result {
	cat, known := categories[typeCode]
	if !known {
		return Result{Category: Unclassified, Direction: DirectionNone}
	}

	res := Result{Category: cat}

	switch cat {
	case Sale, Purchase:
		natural := naturalSign[cat]
		res.Reversed = sign != natural
		if cat == Sale {
			res.Direction = Inflow
		} else {
			res.Direction = Outflow
		}
		if res.Reversed {
			res.Direction = flip(res.Direction)
		}
		res.MovesStock = lineType == LineTypeGoods
	case PaymentIn:
		res.Direction = Inflow
	case PaymentOut:
		res.Direction = Outflow
	case Transfer:
		// Transfers move stock between warehouses of the same firm;
		// no money direction, no firm-level quantity change.
		res.Direction = DirectionNone
	}

	return res
}

func flip(d Direction) Direction {
	switch d {
	case Inflow:
		return Outflow
	case Outflow:
		return Inflow
	default:
		return DirectionNone
	}
}
