package specification

import (
	"strings"

	"gorm.io/gorm"
)

// MenuNameEquals matches a canonical item key exactly.
type MenuNameEquals struct {
	Name string
}

func (s MenuNameEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = ?", strings.ToLower(s.Name))
}

// MenuNameLike matches names containing the fragment, ranking names that
// start with it ahead of names that only contain it.
type MenuNameLike struct {
	Fragment string
}

func (s MenuNameLike) Apply(db *gorm.DB) *gorm.DB {
	f := escapeLike(strings.ToLower(s.Fragment))
	return db.
		Where("LOWER(name) LIKE ?", "%"+f+"%").
		Order(gorm.Expr("CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END", f+"%")).
		Order("LENGTH(name) ASC")
}

// MenuNamesIn loads several items in one query.
type MenuNamesIn struct {
	Names []string
}

func (s MenuNamesIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name IN ?", s.Names)
}

// PreloadOrderItems loads line items with an order, in insertion order.
type PreloadOrderItems struct{}

func (s PreloadOrderItems) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_items.id ASC")
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
