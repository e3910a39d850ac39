// Package rowstore is the read-only client of the hosted Row Store.
// It exposes exactly the three read operations the site needs:
// select *, filter by equality on one column, order by one column.
package rowstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table names
const (
	TableAssets       = "assets"
	TableGalleryItems = "gallery_items"
	TableLeaderboards = "leaderboards"
	TableModerators   = "moderators"
	TableTeamMembers  = "team_members"
)

var (
	ErrUnknownTable  = errors.New("rowstore: unknown table")
	ErrUnknownColumn = errors.New("rowstore: unknown column")
)

// columns lists the readable columns per table
var columns = map[string][]string{
	TableAssets:       {"id", "name", "category", "size", "format", "downloads", "color_class", "icon_name", "file_url"},
	TableGalleryItems: {"id", "type", "title", "date_display", "thumbnail_class", "thumbnail_url", "url", "height_class", "views", "likes", "tags"},
	TableLeaderboards: {"id", "username", "handle", "avatar_url", "category", "period", "value", "rank", "is_live"},
	TableModerators:   {"id", "username", "role", "since", "avatar_url"},
	TableTeamMembers:  {"id", "name", "role", "trait", "trait_icon", "bio", "image", "color", "tiktok", "instagram"},
}

var queriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rowstore_queries_total",
		Help: "Row Store reads by table and result",
	},
	[]string{"table", "result"},
)

// Eq is an equality filter on one column
type Eq struct {
	Column string
	Value  interface{}
}

// Order sorts by one column
type Order struct {
	Column    string
	Ascending bool
}

// Query is a single read against one named table
type Query struct {
	Table  string
	Filter *Eq
	Order  *Order
}

// From starts a query on table
func From(table string) Query {
	return Query{Table: table}
}

// Eq adds an equality filter
func (q Query) Eq(column string, value interface{}) Query {
	q.Filter = &Eq{Column: column, Value: value}
	return q
}

// OrderBy adds an ordering
func (q Query) OrderBy(column string, ascending bool) Query {
	q.Order = &Order{Column: column, Ascending: ascending}
	return q
}

// Validate checks the table and every referenced column
func (q Query) Validate() error {
	cols, ok := columns[q.Table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, q.Table)
	}
	if q.Filter != nil && !contains(cols, q.Filter.Column) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, q.Table, q.Filter.Column)
	}
	if q.Order != nil && !contains(cols, q.Order.Column) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, q.Table, q.Order.Column)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Store reads rows from named tables
type Store interface {
	// Select runs q and scans every row into dest (a pointer to a slice)
	Select(ctx context.Context, q Query, dest interface{}) error
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by GORM
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Select(ctx context.Context, q Query, dest interface{}) error {
	if err := q.Validate(); err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Table(q.Table)
	if q.Filter != nil {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: q.Filter.Column}, Value: q.Filter.Value})
	}
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Order.Column},
			Desc:   !q.Order.Ascending,
		})
	}

	if err := tx.Find(dest).Error; err != nil {
		queriesTotal.WithLabelValues(q.Table, "error").Inc()
		return fmt.Errorf("select %s: %w", q.Table, err)
	}
	queriesTotal.WithLabelValues(q.Table, "ok").Inc()
	return nil
}
