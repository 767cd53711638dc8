package memory

import (
	"storefront-backend/internal/domain"

	"github.com/shopspring/decimal"
)

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func pricePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intPtr(v int) *int { return &v }

const pexels = "https://images.pexels.com/photos/"

// seedCategories mirrors the storefront's category tabs. ProductCount is
// filled in from seedProducts when the repository is built.
var seedCategories = []domain.Category{
	{ID: "electronics", Name: "Electronics", Description: "Latest tech gadgets and devices"},
	{ID: "accessories", Name: "Accessories", Description: "Essential tech accessories and add-ons"},
	{ID: "audio", Name: "Audio", Description: "Speakers, earbuds and everything that makes sound"},
	{ID: "wearables", Name: "Wearables", Description: "Smart devices you can wear"},
}

var seedProducts = []domain.Product{
	{
		ID:            "1",
		Name:          "Premium Wireless Headphones",
		Price:         price(299),
		OriginalPrice: pricePtr(399),
		Rating:        4.8,
		Reviews:       324,
		Description:   "Experience premium sound quality with these wireless headphones featuring active noise cancellation, 30-hour battery life, and premium comfort design.",
		Features: []string{
			"Active Noise Cancellation",
			"30-hour battery life",
			"Premium comfort design",
			"High-resolution audio",
			"Quick charge technology",
			"Multi-device connectivity",
		},
		Specifications: map[string]string{
			"Driver Size":        "40mm",
			"Frequency Response": "20Hz - 20kHz",
			"Battery Life":       "30 hours",
			"Charging Time":      "2 hours",
			"Weight":             "250g",
			"Connectivity":       "Bluetooth 5.0",
		},
		Images: []string{
			pexels + "3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=800",
			pexels + "8534088/pexels-photo-8534088.jpeg?auto=compress&cs=tinysrgb&w=800",
			pexels + "1649771/pexels-photo-1649771.jpeg?auto=compress&cs=tinysrgb&w=800",
		},
		InStock:    true,
		Discount:   intPtr(25),
		Category:   "Electronics",
		Brand:      "TechBrand",
		SKU:        "TB-WH-001",
		IsFeatured: true,
	},
	{
		ID:          "2",
		Name:        "Smart Fitness Watch",
		Price:       price(199),
		Rating:      4.9,
		Reviews:     156,
		Description: "Track your fitness goals with this advanced smartwatch featuring heart rate monitoring, GPS, and 7-day battery life.",
		Features: []string{
			"Heart rate monitoring",
			"Built-in GPS",
			"7-day battery life",
			"Water resistant",
			"Sleep tracking",
			"Multiple sport modes",
		},
		Specifications: map[string]string{
			"Display":          `1.4" AMOLED`,
			"Battery Life":     "7 days",
			"Water Resistance": "5ATM",
			"Connectivity":     "Bluetooth 5.0, WiFi",
			"Sensors":          "Heart rate, GPS, Accelerometer",
			"Compatibility":    "iOS & Android",
		},
		Images:     []string{pexels + "437037/pexels-photo-437037.jpeg?auto=compress&cs=tinysrgb&w=800"},
		InStock:    true,
		Category:   "Wearables",
		Brand:      "FitTech",
		SKU:        "FT-SW-002",
		IsFeatured: true,
	},
	{
		ID:            "3",
		Name:          "Portable Bluetooth Speaker",
		Price:         price(89),
		OriginalPrice: pricePtr(119),
		Rating:        4.7,
		Reviews:       89,
		Images:        []string{pexels + "1649771/pexels-photo-1649771.jpeg?auto=compress&cs=tinysrgb&w=800"},
		InStock:       true,
		Discount:      intPtr(25),
		Category:      "Audio",
		Brand:         "SoundWave",
		SKU:           "SW-BS-003",
		IsFeatured:    true,
	},
	{
		ID:         "4",
		Name:       "Wireless Charging Pad",
		Price:      price(49),
		Rating:     4.6,
		Reviews:    203,
		Images:     []string{pexels + "4526414/pexels-photo-4526414.jpeg?auto=compress&cs=tinysrgb&w=800"},
		InStock:    false,
		Category:   "Accessories",
		Brand:      "ChargeUp",
		SKU:        "CU-CP-004",
		IsFeatured: true,
	},
	{
		ID:            "5",
		Name:          "USB-C Hub Adapter",
		Price:         price(79),
		OriginalPrice: pricePtr(99),
		Rating:        4.5,
		Reviews:       67,
		Images:        []string{pexels + "163100/circuit-circuit-board-resistor-computer-163100.jpeg?auto=compress&cs=tinysrgb&w=800"},
		InStock:       true,
		Discount:      intPtr(20),
		Category:      "Accessories",
		Brand:         "PortMax",
		SKU:           "PM-UH-005",
		IsFeatured:    true,
	},
	{
		ID:         "6",
		Name:       "Gaming Mechanical Keyboard",
		Price:      price(159),
		Rating:     4.8,
		Reviews:    445,
		Images:     []string{pexels + "2115256/pexels-photo-2115256.jpeg?auto=compress&cs=tinysrgb&w=800"},
		InStock:    true,
		Category:   "Accessories",
		Brand:      "KeyForge",
		SKU:        "KF-MK-006",
		IsFeatured: true,
	},
	{
		ID:            "7",
		Name:          "Wireless Bluetooth Earbuds",
		Price:         price(129),
		OriginalPrice: pricePtr(179),
		Rating:        4.8,
		Reviews:       324,
		Images:        []string{pexels + "8534088/pexels-photo-8534088.jpeg?auto=compress&cs=tinysrgb&w=800"},
		InStock:       true,
		Discount:      intPtr(28),
		Category:      "Audio",
		Brand:         "SoundWave",
		SKU:           "SW-EB-007",
	},
}
