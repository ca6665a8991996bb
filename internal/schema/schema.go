package schema

import "strings"

// FieldType is the semantic type of a declared field.
type FieldType string

const (
	Text    FieldType = "text"
	Number  FieldType = "number"
	Integer FieldType = "integer"
	Boolean FieldType = "boolean"
	Email   FieldType = "email"
	Array   FieldType = "array"
)

// Field declares one attribute of an entity: its type, whether it is
// required, the default applied when an optional field is absent, and
// numeric bounds. Array fields carry the element schema in Items.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Default     any
	Min         *float64
	Max         *float64
	Items       *Schema
	Description string
}

// Schema is the declarative definition of one entity. The field order
// matters only for the serialized description; validation treats fields
// independently.
type Schema struct {
	Name   string
	Fields []Field
}

// CollectionName maps a schema name to its storage collection:
// the lowercased schema name, nothing fancier.
func CollectionName(schemaName string) string {
	return strings.ToLower(schemaName)
}

func bound(v float64) *float64 { return &v }

var User = &Schema{
	Name: "User",
	Fields: []Field{
		{Name: "name", Type: Text, Required: true, Description: "Full name"},
		{Name: "email", Type: Email, Required: true, Description: "Email address"},
		{Name: "address", Type: Text, Description: "Address"},
		{Name: "phone", Type: Text, Description: "Phone number"},
		{Name: "is_active", Type: Boolean, Default: true, Description: "Whether user is active"},
	},
}

var Product = &Schema{
	Name: "Product",
	Fields: []Field{
		{Name: "title", Type: Text, Required: true, Description: "Product title"},
		{Name: "description", Type: Text, Description: "Product description"},
		{Name: "price", Type: Number, Required: true, Min: bound(0), Description: "Price in dollars"},
		{Name: "category", Type: Text, Required: true, Description: "Product category"},
		{Name: "image_url", Type: Text, Description: "Primary image URL"},
		{Name: "rating", Type: Number, Default: 4.5, Min: bound(0), Max: bound(5), Description: "Average rating"},
		{Name: "stock", Type: Integer, Default: int64(100), Min: bound(0), Description: "Units in stock"},
		{Name: "in_stock", Type: Boolean, Default: true, Description: "Whether product is in stock"},
	},
}

var OrderItem = &Schema{
	Name: "OrderItem",
	Fields: []Field{
		{Name: "product_id", Type: Text, Required: true, Description: "ID of the product"},
		{Name: "title", Type: Text, Required: true, Description: "Product title snapshot at order time"},
		{Name: "price", Type: Number, Required: true, Min: bound(0), Description: "Unit price at order time"},
		{Name: "quantity", Type: Integer, Required: true, Min: bound(1), Description: "Quantity ordered"},
		{Name: "image_url", Type: Text},
	},
}

var Order = &Schema{
	Name: "Order",
	Fields: []Field{
		{Name: "buyer_name", Type: Text, Required: true, Description: "Buyer full name"},
		{Name: "buyer_email", Type: Email, Required: true, Description: "Buyer email"},
		{Name: "buyer_address", Type: Text, Required: true, Description: "Shipping address"},
		{Name: "buyer_phone", Type: Text, Description: "Phone number"},
		{Name: "items", Type: Array, Required: true, Items: OrderItem, Description: "List of items in the order"},
		{Name: "subtotal", Type: Number, Required: true, Min: bound(0)},
		{Name: "shipping", Type: Number, Default: float64(0), Min: bound(0)},
		{Name: "total", Type: Number, Required: true, Min: bound(0)},
		{Name: "status", Type: Text, Default: "pending", Description: "Order status"},
	},
}

// Collections lists the top-level entity schemas, i.e. the ones persisted
// in their own collections. OrderItem only appears embedded in Order.
var Collections = []*Schema{User, Product, Order}

// Lookup resolves a schema by name, case-insensitively.
func Lookup(name string) (*Schema, bool) {
	for _, s := range Collections {
		if CollectionName(s.Name) == strings.ToLower(name) {
			return s, true
		}
	}
	return nil, false
}

// JSONSchema serializes the schema into a JSON-schema-shaped description
// for the generic UI behind GET /schema.
func (s *Schema) JSONSchema() map[string]any {
	props := map[string]any{}
	required := []string{}
	for _, f := range s.Fields {
		p := map[string]any{}
		switch f.Type {
		case Text:
			p["type"] = "string"
		case Email:
			p["type"] = "string"
			p["format"] = "email"
		case Number:
			p["type"] = "number"
		case Integer:
			p["type"] = "integer"
		case Boolean:
			p["type"] = "boolean"
		case Array:
			p["type"] = "array"
			p["items"] = f.Items.JSONSchema()
		}
		if f.Min != nil {
			p["minimum"] = *f.Min
		}
		if f.Max != nil {
			p["maximum"] = *f.Max
		}
		if f.Default != nil {
			p["default"] = f.Default
		}
		if f.Description != "" {
			p["description"] = f.Description
		}
		props[f.Name] = p
		if f.Required {
			required = append(required, f.Name)
		}
	}
	out := map[string]any{
		"title":      s.Name,
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// Describe returns the aggregate schema description keyed by lowercase
// entity name.
func Describe() map[string]any {
	out := map[string]any{}
	for _, s := range Collections {
		out[CollectionName(s.Name)] = s.JSONSchema()
	}
	return out
}
