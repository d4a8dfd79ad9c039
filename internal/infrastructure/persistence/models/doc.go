// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities so the domain layer stays free of
// ORM concerns.
//
// Relations are declared only on the parent side (has-many) so AutoMigrate emits the
// foreign keys with the right ON DELETE behavior:
//   - orders.customer_id -> customers ON DELETE CASCADE
//   - order_items.order_id -> orders ON DELETE CASCADE
//   - order_items.shop_item_id -> shop_items ON DELETE RESTRICT
//   - shop_item_category_mapping -> shop_items / shop_item_categories ON DELETE CASCADE
//
// Repositories never save through these associations; they write each table explicitly.
package models
