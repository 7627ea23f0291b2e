package domain

// Item is a master record for a stocked product.
type Item struct {
	Code        string
	Name        string
	SafetyStock int64
}
