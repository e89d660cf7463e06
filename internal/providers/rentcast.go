package providers

import (
	"context"
	"time"

	apperrors "homematch-search/internal/errors"
	"homematch-search/internal/models"
	"homematch-search/pkg/rentcast"
)

const rentCastName = "rentcast"

type rentCastProvider struct {
	client *rentcast.Client
}

// NewRentCastProvider wraps a RentCast client as a listing provider.
func NewRentCastProvider(client *rentcast.Client) Provider {
	return &rentCastProvider{client: client}
}

func (p *rentCastProvider) Name() string {
	return rentCastName
}

func (p *rentCastProvider) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	query := rentcast.ListingQuery{
		City:         criteria.City,
		State:        criteria.State,
		PropertyType: rentCastPropertyType(criteria.UnitType),
		MinPrice:     criteria.MinPrice,
		MaxPrice:     criteria.MaxPrice,
		MinBedrooms:  criteria.MinBedrooms,
		Limit:        50,
	}

	var properties []models.Property

	if criteria.TransactionType == models.TransactionBuy || criteria.TransactionType == models.TransactionAny {
		listings, err := p.client.SearchSaleListings(ctx, query)
		if err != nil {
			return nil, apperrors.NewProviderError(rentCastName, err)
		}
		for _, l := range listings {
			properties = append(properties, mapRentCastListing(l, models.TransactionBuy))
		}
	}
	if criteria.TransactionType == models.TransactionRent || criteria.TransactionType == models.TransactionAny {
		listings, err := p.client.SearchRentalListings(ctx, query)
		if err != nil {
			return nil, apperrors.NewProviderError(rentCastName, err)
		}
		for _, l := range listings {
			properties = append(properties, mapRentCastListing(l, models.TransactionRent))
		}
	}

	return properties, nil
}

// rentCastPropertyType maps a pinned unit type to RentCast's propertyType
// query value, so the upstream filters server-side. An unpinned search sends
// no filter.
func rentCastPropertyType(unit models.UnitType) string {
	switch unit {
	case models.UnitHouse:
		return "Single Family"
	case models.UnitApartment:
		return "Apartment"
	case models.UnitCondo:
		return "Condo"
	case models.UnitTownhouse:
		return "Townhouse"
	default:
		return ""
	}
}

// mapRentCastListing converts the wire shape into the internal one. Absent
// fields map to zero values; an unrecognized propertyType resolves to house
// so strict unit-type filters drop the record instead of leaking it.
func mapRentCastListing(l rentcast.Listing, txn models.TransactionType) models.Property {
	listedAt, err := time.Parse(time.RFC3339, l.ListedDate)
	if err != nil {
		listedAt = time.Time{}
	}
	return models.Property{
		ID:              l.ID,
		Address:         l.FormattedAddress,
		City:            l.City,
		State:           l.State,
		ZipCode:         l.ZipCode,
		TransactionType: txn,
		Price:           l.Price,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		SquareFootage:   l.SquareFootage,
		UnitType:        models.ListingUnitType(l.PropertyType),
		Description:     l.Description,
		Features:        l.Amenities,
		ImageURLs:       l.PhotoURLs,
		ListingURL:      l.ListingURL,
		Source:          rentCastName,
		ListedAt:        listedAt,
	}
}
