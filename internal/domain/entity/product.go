package entity

// Product is an immutable snapshot of a store product. The platform store
// owns pricing and localization; the app never mutates these fields.
type Product struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	DisplayPrice string `json:"display_price"`
}
