package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "homematch-search/internal/errors"
	"homematch-search/internal/models"
)

const attomName = "attom"

type attomProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAttomProvider creates an adapter for the ATTOM sale-snapshot API.
// ATTOM carries sale records only; rent-only searches get an empty result.
func NewAttomProvider(apiKey, baseURL string) Provider {
	return &attomProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *attomProvider) Name() string {
	return attomName
}

type attomResponse struct {
	Property []struct {
		Identifier struct {
			AttomID int64 `json:"attomId"`
		} `json:"identifier"`
		Address struct {
			Line1       string `json:"line1"`
			Locality    string `json:"locality"`
			CountrySubd string `json:"countrySubd"`
			Postal1     string `json:"postal1"`
		} `json:"address"`
		Summary struct {
			PropClass   string `json:"propclass"`
			PropSubType string `json:"propsubtype"`
		} `json:"summary"`
		Building struct {
			Rooms struct {
				Beds       int     `json:"beds"`
				BathsTotal float64 `json:"bathstotal"`
			} `json:"rooms"`
			Size struct {
				UniversalSize int `json:"universalsize"`
			} `json:"size"`
		} `json:"building"`
		Sale struct {
			Amount struct {
				SaleAmt float64 `json:"saleamt"`
			} `json:"amount"`
			SaleSearchDate string `json:"salesearchdate"`
		} `json:"sale"`
	} `json:"property"`
}

func (p *attomProvider) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	if criteria.TransactionType == models.TransactionRent {
		return nil, nil
	}

	params := url.Values{}
	params.Set("cityName", criteria.City)
	if criteria.MinPrice > 0 {
		params.Set("minSaleAmt", strconv.FormatFloat(criteria.MinPrice, 'f', 0, 64))
	}
	if criteria.MaxPrice > 0 {
		params.Set("maxSaleAmt", strconv.FormatFloat(criteria.MaxPrice, 'f', 0, 64))
	}
	if criteria.MinBedrooms > 0 {
		params.Set("minBeds", strconv.Itoa(criteria.MinBedrooms))
	}
	params.Set("pageSize", "50")

	requestURL := p.baseURL + "/sale/snapshot?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, apperrors.NewProviderError(attomName, err)
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderError(attomName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewProviderError(attomName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewProviderError(attomName, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var parsed attomResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewProviderError(attomName, fmt.Errorf("malformed response: %v", err))
	}

	properties := make([]models.Property, 0, len(parsed.Property))
	for _, record := range parsed.Property {
		listedAt, err := time.Parse("2006-01-02", record.Sale.SaleSearchDate)
		if err != nil {
			listedAt = time.Time{}
		}
		properties = append(properties, models.Property{
			ID:              fmt.Sprintf("attom-%d", record.Identifier.AttomID),
			Address:         record.Address.Line1,
			City:            record.Address.Locality,
			State:           record.Address.CountrySubd,
			ZipCode:         record.Address.Postal1,
			TransactionType: models.TransactionBuy,
			Price:           record.Sale.Amount.SaleAmt,
			Bedrooms:        record.Building.Rooms.Beds,
			Bathrooms:       record.Building.Rooms.BathsTotal,
			SquareFootage:   record.Building.Size.UniversalSize,
			UnitType:        models.ListingUnitType(record.Summary.PropSubType),
			Source:          attomName,
			ListedAt:        listedAt,
		})
	}
	return properties, nil
}
