package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/order/app"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/order/domain"
)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, user_id, status, payment_status, payment_method, payment_ref,
	currency, subtotal_amount, discount_amount, total_amount, shipping_address,
	created_at, updated_at`

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	uid, err := uuid.Parse(order.UserID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order create: invalid user id: %w", err)
	}
	addr, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order create: encode address: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var created domain.Order
	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, status, payment_status, payment_method, payment_ref,
			currency, subtotal_amount, discount_amount, total_amount, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+orderColumns,
		uid, order.Status, order.PaymentStatus, order.PaymentMethod, order.PaymentRef,
		order.Currency, order.SubtotalAmount, order.DiscountAmount, order.TotalAmount, addr,
	)
	if created, err = scanOrder(row); err != nil {
		return domain.Order{}, fmt.Errorf("order create: %w", err)
	}

	oid := uuid.MustParse(created.ID)
	for i, it := range order.Items {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order create: item %d: invalid product id: %w", i, err)
		}

		var itemID uuid.UUID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, name, selected_size, unit_amount, quantity, line_total_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			oid, pid, it.Name, it.Size, it.UnitAmount, it.Quantity, it.LineTotalAmount,
		).Scan(&itemID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order create: item %d: %w", i, err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2`,
			pid, it.Quantity,
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order create: item %d: stock: %w", i, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.Order{}, fmt.Errorf("order create: item %d: insufficient stock for %s", i, it.ProductID)
		}

		it.ID = itemID.String()
		it.OrderID = created.ID
		created.Items = append(created.Items, it)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("order create: commit: %w", err)
	}
	return created, nil
}

func (r *OrderRepo) Get(ctx context.Context, orderID, userID string) (domain.Order, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order get: invalid order id: %w", err)
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order get: invalid user id: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`,
		oid, uid,
	)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, app.ErrNotFound
		}
		return domain.Order{}, fmt.Errorf("order get: %w", err)
	}

	if o.Items, err = r.loadItems(ctx, oid); err != nil {
		return domain.Order{}, fmt.Errorf("order get: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) History(ctx context.Context, userID string, f domain.HistoryFilter) ([]domain.Order, int, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("order history: invalid user id: %w", err)
	}

	where := "WHERE user_id = $1"
	args := []any{uid}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !f.StartDate.IsZero() {
		args = append(args, f.StartDate)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !f.EndDate.IsZero() {
		args = append(args, f.EndDate)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("order history: count: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT `+orderColumns+` FROM orders %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("order history: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("order history: scan: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("order history: rows: %w", err)
	}

	for i := range out {
		oid := uuid.MustParse(out[i].ID)
		if out[i].Items, err = r.loadItems(ctx, oid); err != nil {
			return nil, 0, fmt.Errorf("order history: %w", err)
		}
	}
	return out, total, nil
}

func (r *OrderRepo) SetStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	return r.setField(ctx, orderID, "status", status)
}

func (r *OrderRepo) SetPaymentStatus(ctx context.Context, orderID, paymentStatus string) (domain.Order, error) {
	return r.setField(ctx, orderID, "payment_status", paymentStatus)
}

func (r *OrderRepo) setField(ctx context.Context, orderID, column, value string) (domain.Order, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order update: invalid order id: %w", err)
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE orders SET %s = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, column),
		oid, value,
	)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, app.ErrNotFound
		}
		return domain.Order{}, fmt.Errorf("order update: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, name, selected_size, unit_amount, quantity, line_total_amount
		FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	defer rows.Close()

	var out []domain.OrderItem
	for rows.Next() {
		var (
			it            domain.OrderItem
			id, oid, pid  uuid.UUID
		)
		if err := rows.Scan(&id, &oid, &pid, &it.Name, &it.Size, &it.UnitAmount, &it.Quantity, &it.LineTotalAmount); err != nil {
			return nil, fmt.Errorf("items: scan: %w", err)
		}
		it.ID = id.String()
		it.OrderID = oid.String()
		it.ProductID = pid.String()
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o        domain.Order
		id, uid  uuid.UUID
		addrJSON []byte
	)
	err := row.Scan(&id, &uid, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.PaymentRef,
		&o.Currency, &o.SubtotalAmount, &o.DiscountAmount, &o.TotalAmount, &addrJSON,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = id.String()
	o.UserID = uid.String()
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &o.ShippingAddress); err != nil {
			return domain.Order{}, fmt.Errorf("decode address: %w", err)
		}
	}
	return o, nil
}
