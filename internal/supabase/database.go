package supabase

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"renovirt-backend/internal/models"
)

// ErrOrderNotFound wraps sql.ErrNoRows for order lookups so callers can map it
// to a 404 without importing database/sql.
var ErrOrderNotFound = errors.New("order not found")

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid in array: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

const orderColumns = `id, user_id, status, photo_type, package_id, addon_ids, image_count,
	gross_cents, credit_cents_applied, final_cents, email, company, object_reference,
	special_requests, payment_intent_id, paid_at, metadata, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var order models.Order
	var addonIDs pq.StringArray
	err := row.Scan(
		&order.ID, &order.UserID, &order.Status, &order.PhotoType, &order.PackageID,
		&addonIDs, &order.ImageCount, &order.GrossCents, &order.CreditCentsApplied,
		&order.FinalCents, &order.Email, &order.Company, &order.ObjectReference,
		&order.SpecialRequests, &order.PaymentIntentID, &order.PaidAt, &order.Metadata,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.AddonIDs, err = parseUUIDs(addonIDs)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder inserts the order, or refreshes it when a row with the same id
// already exists. A submission retried after a failed payment-intent call
// reuses the wizard session's order id.
func (d *DatabaseClient) CreateOrder(order *models.Order) (*models.Order, error) {
	row := d.db.QueryRow(`
		INSERT INTO orders (id, user_id, status, photo_type, package_id, addon_ids, image_count,
			gross_cents, credit_cents_applied, final_cents, email, company, object_reference,
			special_requests, payment_intent_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			photo_type = EXCLUDED.photo_type,
			package_id = EXCLUDED.package_id,
			addon_ids = EXCLUDED.addon_ids,
			image_count = EXCLUDED.image_count,
			gross_cents = EXCLUDED.gross_cents,
			credit_cents_applied = EXCLUDED.credit_cents_applied,
			final_cents = EXCLUDED.final_cents,
			email = EXCLUDED.email,
			company = EXCLUDED.company,
			object_reference = EXCLUDED.object_reference,
			special_requests = EXCLUDED.special_requests,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
		RETURNING `+orderColumns+`
	`, order.ID, order.UserID, order.Status, order.PhotoType, order.PackageID,
		pq.Array(uuidStrings(order.AddonIDs)), order.ImageCount, order.GrossCents,
		order.CreditCentsApplied, order.FinalCents, order.Email, order.Company,
		order.ObjectReference, order.SpecialRequests, order.PaymentIntentID, order.Metadata)

	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return created, nil
}

func (d *DatabaseClient) GetOrder(orderID, userID uuid.UUID) (*models.Order, error) {
	row := d.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) ListOrders(userID uuid.UUID) ([]models.Order, error) {
	rows, err := d.db.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// AdminListOrders returns orders joined with the customer profile, optionally
// filtered by status and a free-text search over email, company, and object
// reference.
func (d *DatabaseClient) AdminListOrders(status models.OrderStatus, search string) ([]models.AdminOrder, error) {
	rows, err := d.db.Query(`
		SELECT o.id, o.user_id, o.status, o.photo_type, o.package_id, o.addon_ids, o.image_count,
			o.gross_cents, o.credit_cents_applied, o.final_cents, o.email, o.company,
			o.object_reference, o.special_requests, o.payment_intent_id, o.paid_at,
			o.metadata, o.created_at, o.updated_at,
			p.email, p.first_name, p.last_name, p.company
		FROM orders o
		JOIN customer_profiles p ON p.user_id = o.user_id
		WHERE ($1 = '' OR o.status = $1)
		  AND ($2 = '' OR o.email ILIKE '%' || $2 || '%'
			OR o.company ILIKE '%' || $2 || '%'
			OR o.object_reference ILIKE '%' || $2 || '%'
			OR p.email ILIKE '%' || $2 || '%')
		ORDER BY o.created_at DESC
	`, string(status), search)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin orders: %w", err)
	}
	defer rows.Close()

	var orders []models.AdminOrder
	for rows.Next() {
		var ao models.AdminOrder
		var addonIDs pq.StringArray
		err := rows.Scan(
			&ao.ID, &ao.UserID, &ao.Status, &ao.PhotoType, &ao.PackageID,
			&addonIDs, &ao.ImageCount, &ao.GrossCents, &ao.CreditCentsApplied,
			&ao.FinalCents, &ao.Email, &ao.Company, &ao.ObjectReference,
			&ao.SpecialRequests, &ao.PaymentIntentID, &ao.PaidAt, &ao.Metadata,
			&ao.CreatedAt, &ao.UpdatedAt,
			&ao.CustomerEmail, &ao.FirstName, &ao.LastName, &ao.CustomerCompany,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin order: %w", err)
		}
		ao.AddonIDs, err = parseUUIDs(addonIDs)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ao)
	}
	return orders, rows.Err()
}

func (d *DatabaseClient) GetOrderAny(orderID uuid.UUID) (*models.Order, error) {
	row := d.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) UpdateOrderStatus(orderID uuid.UUID, status models.OrderStatus) error {
	_, err := d.db.Exec(`
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	return err
}

func (d *DatabaseClient) SetPaymentIntent(orderID uuid.UUID, intentID string) error {
	_, err := d.db.Exec(`
		UPDATE orders
		SET payment_intent_id = $1, updated_at = NOW()
		WHERE id = $2
	`, intentID, orderID)
	return err
}

// MarkOrderPaid records the moment a payment for the order was confirmed.
func (d *DatabaseClient) MarkOrderPaid(orderID uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE orders
		SET paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND paid_at IS NULL
	`, orderID)
	return err
}

func (d *DatabaseClient) CreateOrderImage(img *models.OrderImage) error {
	_, err := d.db.Exec(`
		INSERT INTO order_images (id, order_id, user_id, filename, storage_path, storage_url,
			file_size, mime_type, is_processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (order_id, storage_path) DO NOTHING
	`, img.ID, img.OrderID, img.UserID, img.Filename, img.StoragePath, img.StorageURL,
		img.FileSize, img.MimeType, img.IsProcessed)
	return err
}

func (d *DatabaseClient) GetOrderImages(orderID, userID uuid.UUID) ([]models.OrderImage, error) {
	rows, err := d.db.Query(`
		SELECT id, order_id, user_id, filename, storage_path, storage_url, file_size,
			mime_type, is_processed, created_at
		FROM order_images
		WHERE order_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order images: %w", err)
	}
	defer rows.Close()

	var images []models.OrderImage
	for rows.Next() {
		var img models.OrderImage
		err := rows.Scan(
			&img.ID, &img.OrderID, &img.UserID, &img.Filename, &img.StoragePath,
			&img.StorageURL, &img.FileSize, &img.MimeType, &img.IsProcessed, &img.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (d *DatabaseClient) ListPackages() ([]models.Package, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, price_cents_each, is_active, created_at
		FROM packages
		WHERE is_active = TRUE
		ORDER BY price_cents_each ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCentsEach, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (d *DatabaseClient) GetPackage(id uuid.UUID) (*models.Package, error) {
	var p models.Package
	err := d.db.QueryRow(`
		SELECT id, name, description, price_cents_each, is_active, created_at
		FROM packages
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.PriceCentsEach, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &p, nil
}

func (d *DatabaseClient) ListAddons() ([]models.Addon, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, price_cents_each, is_active, created_at
		FROM addons
		WHERE is_active = TRUE
		ORDER BY price_cents_each ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list addons: %w", err)
	}
	defer rows.Close()

	var addons []models.Addon
	for rows.Next() {
		var a models.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.PriceCentsEach, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan addon: %w", err)
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}

func (d *DatabaseClient) GetProfile(userID uuid.UUID) (*models.CustomerProfile, error) {
	var p models.CustomerProfile
	err := d.db.QueryRow(`
		SELECT id, user_id, email, first_name, last_name, company, role, credits, created_at, updated_at
		FROM customer_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Email, &p.FirstName, &p.LastName, &p.Company,
		&p.Role, &p.Credits, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (d *DatabaseClient) CreateNotification(n *models.OrderNotification) error {
	_, err := d.db.Exec(`
		INSERT INTO order_notifications (id, order_id, user_id, status, note)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.OrderID, n.UserID, n.Status, n.Note)
	return err
}

func (d *DatabaseClient) ListNotifications(userID uuid.UUID) ([]models.OrderNotification, error) {
	rows, err := d.db.Query(`
		SELECT id, order_id, user_id, status, note, is_read, created_at
		FROM order_notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.OrderNotification
	for rows.Next() {
		var n models.OrderNotification
		if err := rows.Scan(&n.ID, &n.OrderID, &n.UserID, &n.Status, &n.Note, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// GetUserCredits calls the backend credit-lookup function. The balance is only
// mutated by backend-side referral and payment logic, never here.
func (d *DatabaseClient) GetUserCredits(userID uuid.UUID) (int64, error) {
	var credits int64
	err := d.db.QueryRow(`SELECT get_user_credits($1)`, userID).Scan(&credits)
	if err != nil {
		return 0, fmt.Errorf("failed to get user credits: %w", err)
	}
	return credits, nil
}

// HasAdminRole checks the admin role flag against the trusted source of truth.
func (d *DatabaseClient) HasAdminRole(userID uuid.UUID) (bool, error) {
	var isAdmin bool
	err := d.db.QueryRow(`SELECT has_admin_role($1)`, userID).Scan(&isAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}
	return isAdmin, nil
}

// AbandonedOrder identifies an order removed by the abandoned-order cleanup
// so its storage objects can be removed as well.
type AbandonedOrder struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteAbandonedOrders removes pending orders whose outstanding payment never
// arrived within the given age and returns the removed orders. Orders fully
// covered by credits owe nothing and are left alone.
func (d *DatabaseClient) DeleteAbandonedOrders(olderThan time.Duration) ([]AbandonedOrder, error) {
	rows, err := d.db.Query(`
		SELECT order_id, user_id
		FROM delete_abandoned_orders(make_interval(secs => $1))
	`, olderThan.Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to delete abandoned orders: %w", err)
	}
	defer rows.Close()

	var removed []AbandonedOrder
	for rows.Next() {
		var o AbandonedOrder
		if err := rows.Scan(&o.ID, &o.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan abandoned order: %w", err)
		}
		removed = append(removed, o)
	}
	return removed, rows.Err()
}
