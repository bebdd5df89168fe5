// Package fallback holds the static product records served when a live lookup
// cannot be performed.
package fallback

import (
	"math/rand/v2"

	"github.com/shopintent/backend/internal/domain"
)

// Fixed fallback records, one per platform. Tests assert on these values.
var (
	TaobaoProduct = domain.ProductRecord{
		Platform:  domain.PlatformTaobao,
		ProductID: "123456",
		Title:     "耐克 Air Zoom Pegasus 40 跑鞋",
		Price:     699.0,
		URL:       "https://item.taobao.com/item.htm?id=123456",
	}

	AlibabaProduct = domain.ProductRecord{
		Platform:  domain.Platform1688,
		ProductID: "890123",
		Title:     "阿迪达斯 运动衫",
		Price:     299.0,
		URL:       "https://detail.1688.com/offer/890123.html",
	}

	WeidianProduct = domain.ProductRecord{
		Platform:  domain.PlatformWeidian,
		ProductID: "w123",
		Title:     "卫衣纯棉连帽上衣",
		Price:     199.0,
		URL:       "https://weidian.com/item.html?itemID=w123",
	}
)

// Picker returns an index in [0, n).
type Picker func(n int) int

// Catalog serves copies of the fixed fallback records.
type Catalog struct {
	records []domain.ProductRecord
	pick    Picker
}

// NewCatalog creates a catalog over the built-in records. A nil picker uses math/rand.
func NewCatalog(pick Picker) *Catalog {
	if pick == nil {
		pick = rand.IntN
	}
	return &Catalog{
		records: []domain.ProductRecord{TaobaoProduct, AlibabaProduct, WeidianProduct},
		pick:    pick,
	}
}

// For returns the fallback record of platform. Unknown platforms get a random record.
func (c *Catalog) For(platform domain.PlatformID) *domain.ProductRecord {
	for _, rec := range c.records {
		if rec.Platform == platform {
			out := rec
			return &out
		}
	}
	return c.Random()
}

// Random returns a pseudo-randomly chosen record from the whole catalog.
func (c *Catalog) Random() *domain.ProductRecord {
	out := c.records[c.pick(len(c.records))]
	return &out
}

// all returns a copy of every record in the catalog.
func (c *Catalog) all() []domain.ProductRecord {
	out := make([]domain.ProductRecord, len(c.records))
	copy(out, c.records)
	return out
}
