package weidian

import (
	"fmt"

	"github.com/shopintent/backend/internal/domain"
	"github.com/tidwall/gjson"
)

var (
	titlePaths = []string{"result.itemName", "result.item_name", "result.item.itemName", "data.itemName"}
	pricePaths = []string{"result.price", "result.itemPrice", "result.item.price", "data.price"}
)

// MapProduct converts a RapidAPI Weidian response body into a ProductRecord.
func MapProduct(productID, rawURL string, body []byte) (*domain.ProductRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrMalformedProduct)
	}

	title := firstString(body, titlePaths)
	if title == "" {
		return nil, fmt.Errorf("%w: no itemName", domain.ErrMalformedProduct)
	}

	return &domain.ProductRecord{
		Platform:  domain.PlatformWeidian,
		ProductID: productID,
		Title:     title,
		Price:     firstFloat(body, pricePaths),
		URL:       rawURL,
	}, nil
}

func firstString(body []byte, paths []string) string {
	for _, p := range paths {
		if r := gjson.GetBytes(body, p); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return ""
}

// firstFloat accepts numbers and numeric strings such as "199.00".
func firstFloat(body []byte, paths []string) float64 {
	for _, p := range paths {
		if r := gjson.GetBytes(body, p); r.Exists() {
			return r.Float()
		}
	}
	return 0
}
