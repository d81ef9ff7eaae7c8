package store

import "storefront-service/internal/domain"

// Seed loads the static demo dataset: the product catalog, the mega-menu
// categories, a few mock orders and the promo-code registry. Called once at
// startup; the collections reset to this data on every restart.
func (s *MemoryStore) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = seedProducts()
	s.categories = seedCategories()
	s.promos = seedPromos()
	s.orders = seedOrders(s.products)

	s.nextID = 1
	for _, p := range s.products {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
}

func ptr[T any](v T) *T { return &v }

func seedCategories() []domain.Category {
	return []domain.Category{
		{ID: "phones", Name: "Телефони, Таблети & Лаптопи", Icon: "smartphone", Subcategories: []string{"Мобилни телефони", "Таблети", "Лаптопи", "Аксесоари"}},
		{ID: "tv", Name: "TV, Електроника & Гейминг", Icon: "tv", Subcategories: []string{"Телевизори", "Аудио Hi-Fi", "Конзоли", "Игри"}},
		{ID: "appliances", Name: "Големи електроуреди", Icon: "home", Subcategories: []string{"Хладилници", "Перални", "Съдомиялни", "Климатици"}},
		{ID: "fashion", Name: "Мода", Icon: "shirt", Subcategories: []string{"Дамска мода", "Мъжка мода", "Обувки", "Часовници"}},
		{ID: "home", Name: "Дом, Градина & Petshop", Icon: "home", Subcategories: []string{"Мебели", "Кухня", "Осветление", "За домашни любимци"}},
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Title: "Смартфон Apple iPhone 15 Pro, 128GB, 5G, Blue Titanium",
			Price: 2199.00, OldPrice: ptr(2449.00),
			Image:  "https://picsum.photos/400/400?random=1",
			Rating: 4.8, Reviews: 124, IsGenius: true, Category: "Телефони",
			Description: ptr("iPhone 15 Pro. Изкован от титан и оборудван с революционния чип A17 Pro, персонализиран Action бутон и най-мощната камера система в iPhone досега."),
			Features:    []string{"Титан с аерокосмическо качество", "Чип A17 Pro", "48MP основна камера", "USB-C конектор"},
			Specs: map[string]string{
				"Производител": "Apple",
				"Дисплей":      "6.1 inch OLED",
				"Процесор":     "A17 Pro",
				"Памет":        "128 GB",
				"RAM":          "8 GB",
				"Батерия":      "3274 mAh",
				"Цвят":         "Blue Titanium",
			},
		},
		{
			ID: 2, Title: "Лаптоп Apple MacBook Air 13-inch, M2, 8GB RAM, 256GB SSD",
			Price: 2399.00, OldPrice: ptr(2699.00),
			Image:  "https://picsum.photos/400/400?random=2",
			Rating: 4.9, Reviews: 85, IsGenius: true, Category: "Лаптопи",
			Description: ptr("Новият MacBook Air с чип M2 е по-тънък, по-лек и по-бърз. С невероятен дисплей Liquid Retina и до 18 часа живот на батерията."),
			Features:    []string{"Apple M2 чип", "13.6-инчов Liquid Retina дисплей", "1080p FaceTime HD камера", "MagSafe 3 зареждане"},
			Specs: map[string]string{
				"Производител": "Apple",
				"Дисплей":      "13.6 inch Liquid Retina",
				"Процесор":     "Apple M2",
				"Памет":        "256 GB SSD",
				"RAM":          "8 GB",
				"Батерия":      "До 18 часа",
				"Цвят":         "Midnight",
			},
		},
		{
			ID: 3, Title: "Телевизор Samsung LED 55CU7172, 55\" (138 см), Smart, 4K Ultra HD",
			Price: 849.00, OldPrice: ptr(1099.00),
			Image:  "https://picsum.photos/400/400?random=3",
			Rating: 4.5, Reviews: 342, IsGenius: false, Category: "Телевизори",
			Description: ptr("Насладете се на кристално чиста картина с PurColor и Crystal Processor 4K. Smart Hub събира цялото ви любимо съдържание на едно място."),
			Features:    []string{"Crystal Processor 4K", "PurColor технология", "Smart Hub (Tizen OS)", "Q-Symphony звук"},
			Specs: map[string]string{
				"Производител": "Samsung",
				"Дисплей":      "55 inch LED",
				"Резолюция":    "3840 x 2160 4K",
				"Smart TV":     "Да",
				"OS":           "Tizen",
				"Цвят":         "Черен",
			},
		},
		{
			ID: 4, Title: "Пералня Samsung WW80T554DAW/S7, 8 кг, 1400 об/мин, Клас B",
			Price: 949.00, OldPrice: ptr(1299.00),
			Image:  "https://picsum.photos/400/400?random=4",
			Rating: 4.7, Reviews: 56, IsGenius: true, Category: "Перални",
			Description: ptr("Иновативна технология EcoBubble за мощно почистване дори при ниски температури. AI Control персонализира прането като запомня навиците ви."),
			Features:    []string{"EcoBubble™ технология", "AI Control", "AddWash™ вратичка", "Хигиенна пара"},
			Specs: map[string]string{
				"Производител":  "Samsung",
				"Капацитет":     "8 кг",
				"Обороти":       "1400 об/мин",
				"Енергиен клас": "Клас B",
				"Шум":           "72 dB",
				"Цвят":          "Бял",
			},
		},
		{
			ID: 5, Title: "Еспресо машина Philips Series 2200 EP2220/10",
			Price: 549.00, OldPrice: ptr(799.00),
			Image:  "https://picsum.photos/400/400?random=5",
			Rating: 4.6, Reviews: 890, IsGenius: true, Category: "Кафемашини",
			Description: ptr("Насладете се на вкусния вкус и аромат на кафе от пресни зърна, при идеалната температура, благодарение на интелигентната система за приготвяне."),
			Features:    []string{"Керамични мелачки", "Класическа приставка за мляко", "Сензорен дисплей", "AquaClean филтър"},
			Specs: map[string]string{
				"Производител":   "Philips",
				"Тип":            "Автоматична",
				"Налягане":       "15 bar",
				"Резервоар вода": "1.8 л",
				"Капацитет кафе": "275 гр",
				"Цвят":           "Черен",
			},
		},
		{
			ID: 6, Title: "Конзола PlayStation 5 (PS5) Slim, 1TB SSD",
			Price:  1049.00,
			Image:  "https://picsum.photos/400/400?random=6",
			Rating: 5.0, Reviews: 1240, IsGenius: true, Category: "Гейминг",
			Description: ptr("PlayStation 5 Slim предлага нови възможности за игра, които не сте очаквали. Светкавично зареждане с ултра-бърз SSD и по-дълбоко потапяне."),
			Features:    []string{"Тънък дизайн", "1TB SSD съхранение", "Ray Tracing", "4K-TV Gaming до 120Hz"},
			Specs: map[string]string{
				"Производител": "Sony",
				"Платформа":    "PlayStation 5",
				"Съхранение":   "1 TB SSD",
				"Резолюция":    "8K Output",
				"Контролер":    "DualSense",
				"Цвят":         "Бял",
			},
		},
		{
			ID: 7, Title: "Мъжка тениска Nike, Памук, Черен",
			Price: 49.00, OldPrice: ptr(79.00),
			Image:  "https://picsum.photos/400/400?random=7",
			Rating: 4.2, Reviews: 23, IsGenius: false, Category: "Мода",
			Description: ptr("Класическа тениска Nike Sportswear, изработена от мек памук за ежедневен комфорт. Емблематичното лого на гърдите добавя спортен стил."),
			Features:    []string{"100% Памук", "Стандартна кройка", "Обло деколте", "Бродирано лого"},
			Specs: map[string]string{
				"Производител": "Nike",
				"Материал":     "100% Памук",
				"Цвят":         "Черен",
				"Стил":         "Ежедневен",
				"Сезон":        "Всесезонен",
			},
		},
		{
			ID: 8, Title: "AirPods Pro (2nd generation) с MagSafe Case (USB-C)",
			Price: 529.00, OldPrice: ptr(599.00),
			Image:  "https://picsum.photos/400/400?random=8",
			Rating: 4.8, Reviews: 450, IsGenius: true, Category: "Аудио",
			Description: ptr("AirPods Pro (2-ро поколение) с MagSafe кутия за зареждане (USB-C) предлагат до 2 пъти повече активно шумопотискане от предишното поколение."),
			Features:    []string{"H2 Apple Silicon чип", "Адаптивно аудио", "Персонализиран пространствен звук", "Устойчивост на прах и пот"},
			Specs: map[string]string{
				"Производител": "Apple",
				"Тип":          "In-ear",
				"Свързаност":   "Bluetooth 5.3",
				"Батерия":      "До 6 часа",
				"Кутия":        "MagSafe USB-C",
				"Цвят":         "Бял",
			},
		},
	}
}

func seedPromos() []domain.PromoCode {
	return []domain.PromoCode{
		{ID: "p1", Code: "GENIUS", Type: domain.PromoPercent, Value: 10, IsActive: true},
		{ID: "p2", Code: "SUMMER", Type: domain.PromoFixed, Value: 20, IsActive: true},
		{ID: "p3", Code: "WELCOME50", Type: domain.PromoFixed, Value: 50, IsActive: false},
	}
}

func seedOrders(products []domain.Product) []domain.Order {
	return []domain.Order{
		{
			ID: "ORD-001", CustomerName: "Иван Петров", Email: "ivan@example.com",
			Date: "2024-05-15", Total: 2199.00, Status: domain.OrderDelivered,
			Items: []domain.CartItem{{Product: products[0], Quantity: 1}},
		},
		{
			ID: "ORD-002", CustomerName: "Мария Георгиева", Email: "maria@example.com",
			Date: "2024-05-18", Total: 898.00, Status: domain.OrderShipped,
			Items: []domain.CartItem{
				{Product: products[2], Quantity: 1},
				{Product: products[6], Quantity: 1},
			},
		},
		{
			ID: "ORD-003", CustomerName: "Георги Димитров", Email: "georgi@example.com",
			Date: "2024-05-20", Total: 549.00, Status: domain.OrderPending,
			Items: []domain.CartItem{{Product: products[4], Quantity: 1}},
		},
	}
}
