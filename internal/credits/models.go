package credits

// CreditStatus represents the lifecycle status of a carbon credit NFT
type CreditStatus string

const (
	StatusOwned     CreditStatus = "OWNED"
	StatusConverted CreditStatus = "CONVERTED"
)

// CreditNFT represents one verified-project carbon credit. Each credit is
// an ERC-721-style unit: uniquely identified and tied to a single project.
type CreditNFT struct {
	ID         string `json:"id"`
	Project    string `json:"project"`
	OffsetTons int64  `json:"offset_tons"`
	Owned      bool   `json:"owned"`
}

// Status reports the lifecycle status derived from ownership. Conversion
// is one-way: a credit that is no longer owned has been burned.
func (c CreditNFT) Status() CreditStatus {
	if c.Owned {
		return StatusOwned
	}
	return StatusConverted
}

// CatalogSeed returns the default credit catalog a fresh wallet session owns.
func CatalogSeed() []CreditNFT {
	return []CreditNFT{
		{ID: "001", Project: "Forest Reforestation - Amazon", OffsetTons: 500, Owned: true},
		{ID: "002", Project: "Renewable Energy - Solar Farm", OffsetTons: 1200, Owned: true},
		{ID: "003", Project: "Ocean Cleanup Initiative", OffsetTons: 750, Owned: true},
	}
}
