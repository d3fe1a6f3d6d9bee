package catalog

// DemoProducts is the first-run catalog, used whenever no stored catalog can
// be restored.
func DemoProducts() []Product {
	return []Product{
		{
			ID:       "p1",
			Title:    "Noise-Cancelling Wireless Headphones",
			Category: CategoryElectronics,
			Price:    899,
			Rating:   4.6,
			Reviews:  18342,
			Prime:    true,
			Stock:    14,
			Image:    "https://images.unsplash.com/photo-1518441902117-f0a9e9f8d1d4?auto=format&fit=crop&w=1200&q=60",
			Images: []string{
				"https://images.unsplash.com/photo-1518441902117-f0a9e9f8d1d4?auto=format&fit=crop&w=1200&q=60",
			},
			Videos:      []string{},
			Description: "Immersive sound, all-day comfort, and adaptive noise cancelling for work, travel, and everything in between.",
		},
		{
			ID:       "p2",
			Title:    "Smart LED Strip Lights (5m)",
			Category: CategoryHome,
			Price:    109,
			Rating:   4.4,
			Reviews:  9251,
			Prime:    true,
			Stock:    67,
			Image:    "https://images.unsplash.com/photo-1559245010-6564f5d4f8c5?auto=format&fit=crop&w=1200&q=60",
			Images: []string{
				"https://images.unsplash.com/photo-1559245010-6564f5d4f8c5?auto=format&fit=crop&w=1200&q=60",
			},
			Videos:      []string{},
			Description: "Sync colors to your mood. Voice control, scenes, and easy setup for bedrooms, desks, and gaming rooms.",
		},
		{
			ID:       "p3",
			Title:    "Stainless Steel Water Bottle (1L)",
			Category: CategorySports,
			Price:    69,
			Rating:   4.8,
			Reviews:  40210,
			Prime:    false,
			Stock:    120,
			Image:    "https://images.unsplash.com/photo-1526401485004-2fda9f6d3d38?auto=format&fit=crop&w=1200&q=60",
			Images: []string{
				"https://images.unsplash.com/photo-1526401485004-2fda9f6d3d38?auto=format&fit=crop&w=1200&q=60",
			},
			Videos:      []string{},
			Description: "Double-wall insulation keeps drinks cold for up to 24h. Leak-proof cap and durable powder coat.",
		},
	}
}
