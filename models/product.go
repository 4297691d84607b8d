package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories form a closed enum.
var ProductCategories = []string{
	"fashion-apparel",
	"topwear",
	"bottomwear",
	"footwear",
	"accessories",
	"toys-hobbies",
}

// Target audiences form a closed enum.
var TargetAudiences = []string{"men", "women", "kids", "unisex"}

// MaxFeaturedProducts caps how many products may be featured system-wide.
const MaxFeaturedProducts = 4

// MaxProductImages caps the image gallery size per product.
const MaxProductImages = 4

// Product is a catalog entry.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Slug           string             `bson:"slug" json:"slug"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"`
	TargetAudience string             `bson:"targetAudience" json:"targetAudience"`
	Image          string             `bson:"image" json:"image"`
	Images         []string           `bson:"images" json:"images"`
	Price          float64            `bson:"price" json:"price"`
	DiscountPrice  *float64           `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	Colors         []string           `bson:"colors" json:"colors"`
	Sizes          []string           `bson:"sizes" json:"sizes"`
	Tags           []string           `bson:"tags" json:"tags"`
	Rating         float64            `bson:"rating" json:"rating"`
	ReviewCount    int                `bson:"reviewCount" json:"reviewCount"`
	Stock          int                `bson:"stock" json:"stock"`
	IsFeatured     bool               `bson:"isFeatured" json:"isFeatured"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a product title: lowercase, strip
// non-alphanumerics, hyphenate.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ValidCategory reports whether c is a known product category.
func ValidCategory(c string) bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidAudience reports whether a is a known target audience.
func ValidAudience(a string) bool {
	for _, known := range TargetAudiences {
		if a == known {
			return true
		}
	}
	return false
}

// Validate checks the creation-time invariants of a product.
func (p *Product) Validate() error {
	if p.Title == "" {
		return NewValidationError("title is required")
	}
	if p.Slug == "" {
		return NewValidationError("slug is required")
	}
	if p.Description == "" {
		return NewValidationError("description is required")
	}
	if !ValidCategory(p.Category) {
		return NewValidationError("invalid category: " + p.Category)
	}
	if !ValidAudience(p.TargetAudience) {
		return NewValidationError("invalid target audience: " + p.TargetAudience)
	}
	if p.Price < 0 {
		return NewValidationError("price cannot be negative")
	}
	if p.DiscountPrice != nil {
		if *p.DiscountPrice < 0 {
			return NewValidationError("discount price cannot be negative")
		}
		if *p.DiscountPrice >= p.Price {
			return NewValidationError("discount price must be less than price")
		}
	}
	if p.Stock < 0 {
		return NewValidationError("stock cannot be negative")
	}
	if len(p.Images) == 0 {
		return NewValidationError("at least 1 image is required")
	}
	if len(p.Images) > MaxProductImages {
		return NewValidationError("at most 4 images are allowed")
	}
	return nil
}

// FinalPrice returns the effective selling price.
func (p *Product) FinalPrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}
