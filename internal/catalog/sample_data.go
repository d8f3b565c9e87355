package catalog

import (
	"strconv"

	"github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/shopspring/decimal"
)

const imageBase = "https://images.unsplash.com/"

func img(path string, w, h int) string {
	return imageBase + path + "?w=" + strconv.Itoa(w) + "&h=" + strconv.Itoa(h) + "&fit=crop&crop=center"
}

// SampleCategories returns the built-in category tree.
func SampleCategories() []domain.Category {
	return []domain.Category{
		{
			Name:        "Furniture",
			Description: "Contemporary furniture pieces that blend form and function seamlessly.",
			Image:       img("photo-1586023492125-27b2c045efd7", 600, 400),
			Subcategories: []domain.Subcategory{
				{Name: "Seating", Description: "Chairs, sofas, and benches designed for comfort and style."},
				{Name: "Tables", Description: "Dining tables, coffee tables, and side tables for every space."},
				{Name: "Storage", Description: "Shelving, cabinets, and storage solutions that organize beautifully."},
			},
		},
		{
			Name:        "Lighting",
			Description: "Illumination that creates atmosphere and enhances your space.",
			Image:       img("photo-1524484485831-a92ffc0de03f", 600, 400),
			Subcategories: []domain.Subcategory{
				{Name: "Pendant Lights", Description: "Hanging lights that make a statement."},
				{Name: "Table Lamps", Description: "Desk and accent lighting for focused illumination."},
				{Name: "Floor Lamps", Description: "Standing lights that provide ambient illumination."},
			},
		},
		{
			Name:        "Accessories",
			Description: "Thoughtfully designed objects that complete your living space.",
			Image:       img("photo-1555041469-a586c61ea9bc", 600, 400),
			Subcategories: []domain.Subcategory{
				{Name: "Textiles", Description: "Cushions, throws, and rugs that add warmth and texture."},
				{Name: "Ceramics", Description: "Handcrafted pottery and decorative vessels."},
				{Name: "Decorative Objects", Description: "Sculptural pieces and artistic accents."},
			},
		},
	}
}

// SampleProducts returns the built-in product list in catalog order.
func SampleProducts() []domain.Product {
	chair := img("photo-1506439773649-6e0eb8cfb237", 600, 600)
	pendant := img("photo-1524484485831-a92ffc0de03f", 600, 600)
	table := img("photo-1449247709967-d4461a6a6103", 600, 600)
	pillow := img("photo-1555041469-a586c61ea9bc", 600, 600)
	lamp := img("photo-1507003211169-0a1dd7228f2d", 600, 600)
	shelf := img("photo-1545558014-8692077e9b5c", 600, 600)

	return []domain.Product{
		{
			ID:          "1",
			Name:        "Minimal Oak Chair",
			Price:       decimal.NewFromInt(299),
			Image:       chair,
			Images:      []string{chair, img("photo-1540932239986-30128078f3c5", 600, 600)},
			Category:    "Furniture",
			Subcategory: "Seating",
			Designer:    "Nordic Design Studio",
			Description: "A beautifully crafted oak chair that embodies contemporary design principles. The clean lines and natural wood grain make it perfect for any modern interior.",
			Materials:   []string{"Solid Oak", "Natural Oil Finish"},
			Dimensions:  domain.Dimensions{Width: 45, Height: 82, Depth: 52},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "2",
			Name:        "Ceramic Pendant Light",
			Price:       decimal.NewFromInt(189),
			Image:       pendant,
			Images:      []string{pendant},
			Category:    "Lighting",
			Subcategory: "Pendant Lights",
			Designer:    "Light Studio",
			Description: "Handmade ceramic pendant light with a soft, warm glow. Perfect for creating ambient lighting in dining areas and living spaces.",
			Materials:   []string{"Glazed Ceramic", "Textile Cord"},
			Dimensions:  domain.Dimensions{Width: 25, Height: 20, Depth: 25},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "3",
			Name:        "Walnut Coffee Table",
			Price:       decimal.NewFromInt(799),
			Image:       table,
			Images:      []string{table},
			Category:    "Furniture",
			Subcategory: "Tables",
			Designer:    "Wood Collective",
			Description: "Solid walnut coffee table with clean geometric lines. The natural beauty of the wood grain is enhanced by expert craftsmanship.",
			Materials:   []string{"Solid Walnut", "Natural Wax Finish"},
			Dimensions:  domain.Dimensions{Width: 120, Height: 40, Depth: 60},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "4",
			Name:        "Wool Throw Pillow",
			Price:       decimal.NewFromInt(79),
			Image:       pillow,
			Images:      []string{pillow},
			Category:    "Accessories",
			Subcategory: "Textiles",
			Description: "Soft merino wool throw pillow in natural tones. Adds warmth and texture to any seating arrangement.",
			Materials:   []string{"100% Merino Wool", "Down Fill"},
			Dimensions:  domain.Dimensions{Width: 50, Height: 50, Depth: 15},
			InStock:     false,
			Featured:    false,
		},
		{
			ID:          "5",
			Name:        "Concrete Table Lamp",
			Price:       decimal.NewFromInt(149),
			Image:       lamp,
			Images:      []string{lamp},
			Category:    "Lighting",
			Subcategory: "Table Lamps",
			Designer:    "Industrial Arts",
			Description: "Modern concrete table lamp with minimalist design. Provides focused task lighting with industrial aesthetic.",
			Materials:   []string{"Cast Concrete", "Linen Shade"},
			Dimensions:  domain.Dimensions{Width: 20, Height: 45, Depth: 20},
			InStock:     true,
			Featured:    false,
		},
		{
			ID:          "6",
			Name:        "Modular Bookshelf",
			Price:       decimal.NewFromInt(449),
			Image:       shelf,
			Images:      []string{shelf},
			Category:    "Furniture",
			Subcategory: "Storage",
			Designer:    "Modular Systems",
			Description: "Versatile modular bookshelf system that can be configured to fit any space. Clean lines and functional design.",
			Materials:   []string{"Birch Plywood", "Steel Connectors"},
			Dimensions:  domain.Dimensions{Width: 80, Height: 180, Depth: 30},
			InStock:     true,
			Featured:    true,
		},
	}
}
