package order

import "encoding/json"

// StorageKey is the backend key holding the order document.
const StorageKey = "orderData"

// Data is the stored order document.
type Data struct {
	Items []Item `json:"items"`
}

// Item is one order line. Its shape belongs to the caller and is kept verbatim.
type Item = json.RawMessage

// Default returns the empty order written on first use.
func Default() Data {
	return Data{Items: []Item{}}
}
