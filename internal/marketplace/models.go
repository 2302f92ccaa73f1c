package marketplace

import "time"

// ListingKind distinguishes NFT listings from fungible token bundles
type ListingKind string

const (
	KindNFT   ListingKind = "NFT"
	KindToken ListingKind = "TOKEN"
)

// ListingStatus represents the sale status of a listing
type ListingStatus string

const (
	StatusAvailable ListingStatus = "AVAILABLE"
	StatusSold      ListingStatus = "SOLD"
)

// Listing represents one marketplace catalog entry, priced in cUSD.
type Listing struct {
	ID       string        `json:"id"`
	Kind     ListingKind   `json:"kind"`
	Item     string        `json:"item"`
	Price    int64         `json:"price"`
	Status   ListingStatus `json:"status"`
	ListedAt time.Time     `json:"listed_at"`
	SoldAt   *time.Time    `json:"sold_at,omitempty"`
}

// SeedListings returns the default marketplace catalog.
func SeedListings() []Listing {
	now := time.Now()
	return []Listing{
		{ID: "L1", Kind: KindNFT, Item: "Forest Reforestation NFT #004", Price: 100, Status: StatusAvailable, ListedAt: now},
		{ID: "L2", Kind: KindToken, Item: "500 CC Tokens", Price: 50, Status: StatusAvailable, ListedAt: now},
		{ID: "L3", Kind: KindNFT, Item: "Wind Farm Project NFT #005", Price: 150, Status: StatusAvailable, ListedAt: now},
	}
}
