package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-service/internal/domain"
)

// SearchFilter captures public search parameters. Search results are always
// restricted to approved listings regardless of filter contents.
type SearchFilter struct {
	PropertyType   *int
	OperationType  *int
	StateID        *int
	MunicipalityID *int
	MinPrice       *float64
	MaxPrice       *float64
	MinRooms       *int
	MinStories     *int
	MinArea        *float64
	MaxArea        *float64
	Query          *string
	SortBy         string
	SortAsc        bool
	Limit          int
	Offset         int
}

// sortColumns whitelists caller-selectable sort fields.
var sortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"seller_price": "seller_price",
	"view_count":   "view_count",
	"rooms":        "rooms",
	"total_area":   "total_area",
}

// ListingRepository encapsulates listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, from, to domain.ListingStatus) (bool, error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.Listing, int, error)
	ListByOwner(ctx context.Context, ownerID string, status *domain.ListingStatus, limit, offset int) ([]domain.Listing, int, error)
	ListPending(ctx context.Context, limit, offset int) ([]domain.PendingListing, int, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

const listingColumns = `id, user_id, title, property_type, address, state_id, municipality_id,
               images, video, operation_type, seller_price, is_negotiable, highest_bidding_price,
               payment_type, neighborhood_description, documents_type, view_count, rooms, stories,
               total_area, specifications, notes, communication_preferences, status, created_at, updated_at`

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (user_id, status)
        VALUES ($1, $2)
        RETURNING id, view_count, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		listing.UserID,
		listing.Status,
	).Scan(&listing.ID, &listing.ViewCount, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	const query = `
        UPDATE listings SET title=$1, property_type=$2, address=$3, state_id=$4, municipality_id=$5,
            images=$6, video=$7, operation_type=$8, seller_price=$9, is_negotiable=$10,
            highest_bidding_price=$11, payment_type=$12, neighborhood_description=$13,
            documents_type=$14, rooms=$15, stories=$16, total_area=$17, specifications=$18,
            notes=$19, communication_preferences=$20, status=$21, updated_at=NOW()
        WHERE id=$22
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		listing.Title,
		listing.PropertyType,
		listing.Address,
		listing.StateID,
		listing.MunicipalityID,
		listing.Images,
		listing.Video,
		listing.OperationType,
		listing.SellerPrice,
		listing.IsNegotiable,
		listing.HighestBiddingPrice,
		listing.PaymentType,
		listing.NeighborhoodDescription,
		listing.DocumentsType,
		listing.Rooms,
		listing.Stories,
		listing.TotalArea,
		listing.Specifications,
		listing.Notes,
		listing.CommunicationPreferences,
		listing.Status,
		listing.ID,
	).Scan(&listing.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id=$1`
	var listing domain.Listing
	if err := scanListing(r.pool.QueryRow(ctx, query, id), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementViewCount bumps the counter by one. Last-writer-wins under
// concurrent fetches is acceptable; the increment itself is a single
// atomic statement.
func (r *listingRepository) IncrementViewCount(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE listings SET view_count = view_count + 1 WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatus performs a conditional transition: the write succeeds only
// when the row still carries the expected prior status, so the store
// enforces the lifecycle precondition atomically. Zero rows affected means
// the guard failed (or the row is gone) and is reported as false.
func (r *listingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ListingStatus) (bool, error) {
	const query = `UPDATE listings SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *listingRepository) Search(ctx context.Context, filter SearchFilter) ([]domain.Listing, int, error) {
	clauses, args := buildSearchClauses(filter)
	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM listings WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 12
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		listingColumns, where, sortColumn(filter.SortBy), sortDirection(filter.SortAsc), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID string, status *domain.ListingStatus, limit, offset int) ([]domain.Listing, int, error) {
	clauses := []string{"user_id=$1"}
	args := []any{ownerID}
	if status != nil {
		args = append(args, *status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		listingColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.PendingListing, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM listings WHERE status=$1`, domain.ListingStatusPendingReview,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
        SELECT l.id, l.user_id, l.title, l.property_type, l.address, l.state_id, l.municipality_id,
               l.images, l.video, l.operation_type, l.seller_price, l.is_negotiable, l.highest_bidding_price,
               l.payment_type, l.neighborhood_description, l.documents_type, l.view_count, l.rooms, l.stories,
               l.total_area, l.specifications, l.notes, l.communication_preferences, l.status, l.created_at, l.updated_at,
               u.first_name, u.last_name, u.phone, s.name, m.name
        FROM listings l
        JOIN users u ON u.id = l.user_id
        LEFT JOIN states s ON s.id = l.state_id
        LEFT JOIN municipalities m ON m.id = l.municipality_id
        WHERE l.status=$1
        ORDER BY l.created_at DESC
        LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query, domain.ListingStatusPendingReview)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.PendingListing
	for rows.Next() {
		var p domain.PendingListing
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.PropertyType, &p.Address, &p.StateID, &p.MunicipalityID,
			&p.Images, &p.Video, &p.OperationType, &p.SellerPrice, &p.IsNegotiable, &p.HighestBiddingPrice,
			&p.PaymentType, &p.NeighborhoodDescription, &p.DocumentsType, &p.ViewCount, &p.Rooms, &p.Stories,
			&p.TotalArea, &p.Specifications, &p.Notes, &p.CommunicationPreferences, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&p.OwnerFirstName, &p.OwnerLastName, &p.OwnerPhone, &p.StateName, &p.MunicipalityName,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// buildSearchClauses assembles the WHERE conditions shared by the search and
// count queries. The approved-only restriction is always the first clause.
func buildSearchClauses(filter SearchFilter) ([]string, []any) {
	args := []any{domain.ListingStatusApproved}
	clauses := []string{"status=$1"}

	if filter.PropertyType != nil {
		args = append(args, *filter.PropertyType)
		clauses = append(clauses, fmt.Sprintf("property_type=$%d", len(args)))
	}
	if filter.OperationType != nil {
		args = append(args, *filter.OperationType)
		clauses = append(clauses, fmt.Sprintf("operation_type=$%d", len(args)))
	}
	if filter.StateID != nil {
		args = append(args, *filter.StateID)
		clauses = append(clauses, fmt.Sprintf("state_id=$%d", len(args)))
	}
	if filter.MunicipalityID != nil {
		args = append(args, *filter.MunicipalityID)
		clauses = append(clauses, fmt.Sprintf("municipality_id=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, fmt.Sprintf("seller_price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("seller_price <= $%d", len(args)))
	}
	if filter.MinRooms != nil {
		args = append(args, *filter.MinRooms)
		clauses = append(clauses, fmt.Sprintf("rooms >= $%d", len(args)))
	}
	if filter.MinStories != nil {
		args = append(args, *filter.MinStories)
		clauses = append(clauses, fmt.Sprintf("stories >= $%d", len(args)))
	}
	if filter.MinArea != nil {
		args = append(args, *filter.MinArea)
		clauses = append(clauses, fmt.Sprintf("total_area >= $%d", len(args)))
	}
	if filter.MaxArea != nil {
		args = append(args, *filter.MaxArea)
		clauses = append(clauses, fmt.Sprintf("total_area <= $%d", len(args)))
	}
	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Query)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)))
	}
	return clauses, args
}

func sortColumn(requested string) string {
	if col, ok := sortColumns[requested]; ok {
		return col
	}
	return "created_at"
}

func sortDirection(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}

func scanListing(row pgx.Row, listing *domain.Listing) error {
	return row.Scan(
		&listing.ID,
		&listing.UserID,
		&listing.Title,
		&listing.PropertyType,
		&listing.Address,
		&listing.StateID,
		&listing.MunicipalityID,
		&listing.Images,
		&listing.Video,
		&listing.OperationType,
		&listing.SellerPrice,
		&listing.IsNegotiable,
		&listing.HighestBiddingPrice,
		&listing.PaymentType,
		&listing.NeighborhoodDescription,
		&listing.DocumentsType,
		&listing.ViewCount,
		&listing.Rooms,
		&listing.Stories,
		&listing.TotalArea,
		&listing.Specifications,
		&listing.Notes,
		&listing.CommunicationPreferences,
		&listing.Status,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
}

func collectListings(rows pgx.Rows) ([]domain.Listing, error) {
	var result []domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := scanListing(rows, &listing); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
