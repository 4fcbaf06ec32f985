// Package items formats catalog items for display.
package items

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"pantry/internal/domain"
)

const imagePath = "/items/image/"

// PictureURL resolves an item's picture against the API base URL. Absolute
// URLs are kept, rooted paths are joined to the base and bare file names are
// served from the image directory. An empty picture yields "".
func PictureURL(base, picture string) string {
	picture = strings.TrimSpace(picture)
	if picture == "" {
		return ""
	}
	if u, err := url.Parse(picture); err == nil && u.IsAbs() {
		return picture
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(picture, "/") {
		return base + picture
	}
	return base + imagePath + url.PathEscape(picture)
}

// OriginalPrice is the price before the discount was applied. It returns the
// price unchanged when there is no discount, or when the discount would
// make the original price undefined.
func OriginalPrice(price, discountPercent float64) float64 {
	if discountPercent <= 0 || discountPercent >= 100 {
		return price
	}
	return price / (1 - discountPercent/100)
}

// FormatPrice renders a price with two decimals and a dollar sign
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Discounted reports whether the item carries a discount
func Discounted(it domain.Item) bool {
	return it.Discount > 0
}

// Badge is the discount badge, e.g. "-25%"
func Badge(it domain.Item) string {
	if !Discounted(it) {
		return ""
	}
	return fmt.Sprintf("-%d%%", int(math.Round(it.Discount)))
}

// PriceLine renders "$6.00 (was $8.00) -25%" for discounted items and
// "$6.00" otherwise
func PriceLine(it domain.Item) string {
	if !Discounted(it) {
		return FormatPrice(it.Price)
	}
	return fmt.Sprintf("%s (was %s) %s", FormatPrice(it.Price), FormatPrice(OriginalPrice(it.Price, it.Discount)), Badge(it))
}

// Tags lists the dietary tags of a recipe in display order
func Tags(r domain.Recipe) []string {
	var tags []string
	if r.Vegan {
		tags = append(tags, "Vegan")
	}
	if r.GlutenFree {
		tags = append(tags, "Gluten-Free")
	}
	return tags
}
