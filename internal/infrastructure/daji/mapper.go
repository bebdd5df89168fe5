package daji

import (
	"fmt"

	"github.com/shopintent/backend/internal/domain"
	"github.com/tidwall/gjson"
)

// successCode is the value of the envelope "code" field on success.
const successCode = 200

// Candidate JSON paths, tried in order. Taobao and 1688 responses nest the
// item differently.
var (
	titlePaths = []string{
		"data.title",
		"data.item.title",
		"data.subject",
		"data.subjectTrans",
		"data.item.subject",
	}
	pricePaths = []string{
		"data.price",
		"data.item.price",
		"data.promotion_price",
		"data.item.promotion_price",
		"data.productSaleInfo.priceRangeList.0.price",
	}
)

// MapProduct converts a Daji response body into a ProductRecord.
func MapProduct(platform domain.PlatformID, productID, rawURL string, body []byte) (*domain.ProductRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrMalformedProduct)
	}

	if code := gjson.GetBytes(body, "code"); code.Exists() && code.Int() != successCode {
		msg := gjson.GetBytes(body, "msg").String()
		return nil, fmt.Errorf("%w: code %d %s", domain.ErrProviderRejected, code.Int(), msg)
	}

	title := firstString(body, titlePaths)
	if title == "" {
		return nil, fmt.Errorf("%w: no title", domain.ErrMalformedProduct)
	}

	return &domain.ProductRecord{
		Platform:  platform,
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
