package dto

// OrderDraft is a validated storefront order before prices are snapshotted.
type OrderDraft struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Address       *string
	Comment       *string
	Items         []PlacementItem
}

// PlacementItem is one requested line. Index is its position in the
// request so errors can point at items[i] after the lines are reordered.
type PlacementItem struct {
	Index     int
	ProductID int
	Quantity  int
}
