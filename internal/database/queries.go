package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, order_number, owner_id, customer_id, total_amount, delivery_fee,
			   tax, discount, status, delivery_address, notes, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (id, order_id, dish_id, quantity, price_at_purchase, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	SelectOrderSQL = `
		SELECT o.id, o.order_number, o.owner_id, o.customer_id, o.total_amount, o.delivery_fee,
			   o.tax, o.discount, o.status, o.delivery_address, o.notes, o.payment_method,
			   o.delivery_time, o.created_at, o.updated_at,
			   c.id, c.email, c.name, c.phone, c.address, c.city, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.owner_id = $1 AND o.id = $2`

	ListOrdersSQL = `
		SELECT o.id, o.order_number, o.owner_id, o.customer_id, o.total_amount, o.delivery_fee,
			   o.tax, o.discount, o.status, o.delivery_address, o.notes, o.payment_method,
			   o.delivery_time, o.created_at, o.updated_at,
			   c.id, c.email, c.name, c.phone, c.address, c.city, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.owner_id = $1
		ORDER BY o.created_at DESC`

	SelectOrderItemsSQL = `
		SELECT oi.id, oi.order_id, oi.dish_id, oi.quantity, oi.price_at_purchase, oi.notes,
			   d.id, d.owner_id, d.category_id, d.name, d.price, d.is_available
		FROM order_items oi
		JOIN dishes d ON d.id = oi.dish_id
		WHERE oi.order_id = ANY($1)`

	SelectOrderStatusForUpdateSQL = `
		SELECT status FROM orders
		WHERE owner_id = $1 AND id = $2
		FOR UPDATE`

	UpdateOrderStatusSQL = `
		UPDATE orders
		SET status = $1,
			notes = COALESCE($2, notes),
			delivery_time = COALESCE($3, delivery_time),
			updated_at = NOW()
		WHERE owner_id = $4 AND id = $5`

	SelectOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC`
)

// Customer queries
const (
	InsertCustomerIfAbsentSQL = `
		INSERT INTO customers (id, owner_id, email, name, phone, address, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_id, email) DO NOTHING`

	InsertCustomerSQL = `
		INSERT INTO customers (id, owner_id, email, name, phone, address, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	SelectCustomerByEmailSQL = `
		SELECT id, owner_id, email, name, phone, address, city, created_at
		FROM customers
		WHERE owner_id = $1 AND email = $2`

	SelectCustomerByIDSQL = `
		SELECT id, owner_id, email, name, phone, address, city, created_at
		FROM customers
		WHERE owner_id = $1 AND id = $2`

	ListCustomersSQL = `
		SELECT id, owner_id, email, name, phone, address, city, created_at
		FROM customers
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	SelectCustomerOrderSummariesSQL = `
		SELECT customer_id, id, total_amount, status, created_at
		FROM orders
		WHERE owner_id = $1
		ORDER BY created_at DESC`
)

// Catalog queries
const (
	InsertDishSQL = `
		INSERT INTO dishes (id, owner_id, category_id, name, description, price, image,
			   preparation_time, ingredients, allergens, calories,
			   is_vegetarian, is_vegan, is_gluten_free, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	UpdateDishSQL = `
		UPDATE dishes
		SET category_id = $1, name = $2, description = $3, price = $4, image = $5,
			preparation_time = $6, ingredients = $7, allergens = $8, calories = $9,
			is_vegetarian = $10, is_vegan = $11, is_gluten_free = $12, is_available = $13,
			updated_at = NOW()
		WHERE owner_id = $14 AND id = $15 AND deleted_at IS NULL`

	SoftDeleteDishSQL = `
		UPDATE dishes SET deleted_at = NOW(), is_available = FALSE, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL`

	SelectDishSQL = `
		SELECT id, owner_id, category_id, name, description, price, image,
			   preparation_time, ingredients, allergens, calories,
			   is_vegetarian, is_vegan, is_gluten_free, is_available, created_at, updated_at
		FROM dishes
		WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL`

	ListDishesSQL = `
		SELECT d.id, d.owner_id, d.category_id, d.name, d.description, d.price, d.image,
			   d.preparation_time, d.ingredients, d.allergens, d.calories,
			   d.is_vegetarian, d.is_vegan, d.is_gluten_free, d.is_available, d.created_at, d.updated_at,
			   cat.id, cat.name, cat.description, cat.image, cat.is_active, cat.created_at
		FROM dishes d
		JOIN categories cat ON cat.id = d.category_id
		WHERE d.owner_id = $1 AND d.deleted_at IS NULL
		ORDER BY d.created_at DESC`

	InsertCategorySQL = `
		INSERT INTO categories (id, name, description, image)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	ListCategoriesSQL = `
		SELECT id, name, description, image, is_active, created_at
		FROM categories
		WHERE is_active = TRUE
		ORDER BY name ASC`
)

// Review queries
const (
	InsertReviewSQL = `
		INSERT INTO reviews (id, owner_id, customer_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	ListReviewsSQL = `
		SELECT r.id, r.owner_id, r.customer_id, r.rating, r.comment, r.created_at,
			   c.id, c.email, c.name, c.phone, c.address, c.city, c.created_at
		FROM reviews r
		JOIN customers c ON c.id = r.customer_id
		WHERE r.owner_id = $1
		ORDER BY r.created_at DESC`
)

// Analytics queries
const (
	CountOrdersSQL = `
		SELECT COUNT(*) FROM orders WHERE owner_id = $1`

	RevenueByStatusSQL = `
		SELECT status, COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE owner_id = $1
		GROUP BY status`

	CountCustomersSQL = `
		SELECT COUNT(*) FROM customers WHERE owner_id = $1`

	CountDishesSQL = `
		SELECT COUNT(*) FROM dishes WHERE owner_id = $1 AND deleted_at IS NULL`

	AverageRatingSQL = `
		SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE owner_id = $1`

	ListRecentOrdersSQL = `
		SELECT o.id, o.order_number, o.owner_id, o.customer_id, o.total_amount, o.delivery_fee,
			   o.tax, o.discount, o.status, o.delivery_address, o.notes, o.payment_method,
			   o.delivery_time, o.created_at, o.updated_at,
			   c.id, c.email, c.name, c.phone, c.address, c.city, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.owner_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2`

	PopularDishCountsSQL = `
		SELECT d.id, d.owner_id, d.category_id, d.name, d.description, d.price, d.image,
			   d.preparation_time, d.ingredients, d.allergens, d.calories,
			   d.is_vegetarian, d.is_vegan, d.is_gluten_free, d.is_available, d.created_at, d.updated_at,
			   SUM(oi.quantity) AS total_ordered
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN dishes d ON d.id = oi.dish_id
		WHERE o.owner_id = $1
		GROUP BY d.id, o.status`

	MonthlyDeliveredRevenueSQL = `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month, SUM(total_amount)
		FROM orders
		WHERE owner_id = $1 AND status = 'DELIVERED' AND created_at >= $2
		GROUP BY month`
)
