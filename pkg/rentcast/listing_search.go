package rentcast

import (
	"context"
	"net/url"
	"strconv"
)

// Listing is the RentCast wire shape for one active listing.
type Listing struct {
	ID               string   `json:"id"`
	FormattedAddress string   `json:"formattedAddress"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ZipCode          string   `json:"zipCode"`
	PropertyType     string   `json:"propertyType"`
	Price            float64  `json:"price"`
	Bedrooms         int      `json:"bedrooms"`
	Bathrooms        float64  `json:"bathrooms"`
	SquareFootage    int      `json:"squareFootage"`
	ListedDate       string   `json:"listedDate"`
	Status           string   `json:"status"`
	Description      string   `json:"description"`
	Amenities        []string `json:"amenities"`
	PhotoURLs        []string `json:"photoUrls"`
	ListingURL       string   `json:"listingUrl"`
}

// ListingQuery holds the search parameters RentCast understands.
type ListingQuery struct {
	City         string
	State        string
	PropertyType string
	MinPrice     float64
	MaxPrice     float64
	MinBedrooms  int
	Limit        int
}

// SearchSaleListings queries active for-sale listings.
func (c *Client) SearchSaleListings(ctx context.Context, q ListingQuery) ([]Listing, error) {
	return c.searchListings(ctx, "/listings/sale", q)
}

// SearchRentalListings queries active long-term rental listings.
func (c *Client) SearchRentalListings(ctx context.Context, q ListingQuery) ([]Listing, error) {
	return c.searchListings(ctx, "/listings/rental/long-term", q)
}

func (c *Client) searchListings(ctx context.Context, path string, q ListingQuery) ([]Listing, error) {
	params := url.Values{}
	params.Set("status", "Active")
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.State != "" {
		params.Set("state", q.State)
	}
	if q.PropertyType != "" {
		params.Set("propertyType", q.PropertyType)
	}
	if q.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', 0, 64))
	}
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', 0, 64))
	}
	if q.MinBedrooms > 0 {
		params.Set("bedrooms", strconv.Itoa(q.MinBedrooms))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var listings []Listing
	if err := c.get(ctx, path, params, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
