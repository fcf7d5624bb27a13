package domain

// PropertyTrace records a single sale transaction on a property. The public
// certificate view renders exactly this record.
type PropertyTrace struct {
	ID              string  `json:"id"`
	IDPropertyTrace string  `json:"idPropertyTrace,omitempty"`
	IDProperty      string  `json:"idProperty"`
	DateSale        string  `json:"dateSale"`
	Name            string  `json:"name"`
	Value           float64 `json:"value"`
	Tax             float64 `json:"tax"`
	PropertyName    string  `json:"propertyName,omitempty"`
	PropertyAddress string  `json:"propertyAddress,omitempty"`
}
