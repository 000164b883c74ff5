package store

import (
	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/models"
)

// TourResource maps [models.Tour] onto the tours table.
func TourResource(defaultLimit, maxLimit int) Resource[models.Tour] {
	return Resource[models.Tour]{
		Schema: query.Schema{
			Table: models.Tour{}.TableName(),
			Columns: []string{
				"id", "name", "slug", "duration", "max_group_size", "difficulty",
				"ratings_average", "ratings_quantity", "price", "price_discount",
				"summary", "description", "image_cover", "created_at",
			},
			DefaultSortColumn: "created_at",
			DefaultLimit:      defaultLimit,
			MaxLimit:          maxLimit,
		},
		InsertColumns: []string{
			"name", "slug", "duration", "max_group_size", "difficulty",
			"price", "price_discount", "summary", "description", "image_cover",
		},
		UpdateColumns: []string{
			"name", "slug", "duration", "max_group_size", "difficulty",
			"price", "price_discount", "summary", "description", "image_cover",
		},
		Field: func(t *models.Tour, column string) any {
			switch column {
			case "id":
				return &t.ID
			case "name":
				return &t.Name
			case "slug":
				return &t.Slug
			case "duration":
				return &t.Duration
			case "max_group_size":
				return &t.MaxGroupSize
			case "difficulty":
				return &t.Difficulty
			case "ratings_average":
				return &t.RatingsAverage
			case "ratings_quantity":
				return &t.RatingsQuantity
			case "price":
				return &t.Price
			case "price_discount":
				return &t.PriceDiscount
			case "summary":
				return &t.Summary
			case "description":
				return &t.Description
			case "image_cover":
				return &t.ImageCover
			case "created_at":
				return &t.CreatedAt
			default:
				return nil
			}
		},
	}
}

// ReviewResource maps [models.Review] onto the reviews table.
func ReviewResource(defaultLimit, maxLimit int) Resource[models.Review] {
	return Resource[models.Review]{
		Schema: query.Schema{
			Table: models.Review{}.TableName(),
			Columns: []string{
				"id", "review", "rating", "tour_id", "user_id", "created_at",
			},
			DefaultSortColumn: "created_at",
			DefaultLimit:      defaultLimit,
			MaxLimit:          maxLimit,
		},
		InsertColumns: []string{"review", "rating", "tour_id", "user_id"},
		UpdateColumns: []string{"review", "rating"},
		Field: func(r *models.Review, column string) any {
			switch column {
			case "id":
				return &r.ID
			case "review":
				return &r.Review
			case "rating":
				return &r.Rating
			case "tour_id":
				return &r.TourID
			case "user_id":
				return &r.UserID
			case "created_at":
				return &r.CreatedAt
			default:
				return nil
			}
		},
	}
}

// BookingResource maps [models.Booking] onto the bookings table.
func BookingResource(defaultLimit, maxLimit int) Resource[models.Booking] {
	return Resource[models.Booking]{
		Schema: query.Schema{
			Table: models.Booking{}.TableName(),
			Columns: []string{
				"id", "tour_id", "user_id", "price", "paid", "created_at",
			},
			DefaultSortColumn: "created_at",
			DefaultLimit:      defaultLimit,
			MaxLimit:          maxLimit,
		},
		InsertColumns: []string{"tour_id", "user_id", "price", "paid"},
		UpdateColumns: []string{"price", "paid"},
		Field: func(b *models.Booking, column string) any {
			switch column {
			case "id":
				return &b.ID
			case "tour_id":
				return &b.TourID
			case "user_id":
				return &b.UserID
			case "price":
				return &b.Price
			case "paid":
				return &b.Paid
			case "created_at":
				return &b.CreatedAt
			default:
				return nil
			}
		},
	}
}

// AccountResource maps [models.User] onto the users table for the
// administrative accounts collection. Only non-credential columns are
// exposed; password management stays with [UserRepository].
func AccountResource(defaultLimit, maxLimit int) Resource[models.User] {
	return Resource[models.User]{
		Schema: query.Schema{
			Table: models.User{}.TableName(),
			Columns: []string{
				"id", "name", "email", "role", "created_at",
			},
			DefaultSortColumn: "created_at",
			DefaultLimit:      defaultLimit,
			MaxLimit:          maxLimit,
		},
		InsertColumns: []string{"name", "email", "role"},
		UpdateColumns: []string{"name", "email", "role"},
		Field: func(u *models.User, column string) any {
			switch column {
			case "id":
				return &u.ID
			case "name":
				return &u.Name
			case "email":
				return &u.Email
			case "role":
				return &u.Role
			case "created_at":
				return &u.CreatedAt
			default:
				return nil
			}
		},
	}
}
