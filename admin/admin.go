// Package admin describes how each record type is listed, searched, filtered and edited by the site owner.
package admin

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

const (
	SiteHeader = "Benedict's Portfolio Administration"
	SiteTitle  = "Portfolio Admin"
	IndexTitle = "Welcome to your Portfolio Admin Panel"
)

// Query parameters with a fixed meaning on list endpoints. Every other parameter is a filter.
const (
	SearchParam   = "q"
	OrderingParam = "o"
	LimitParam    = "limit"
)

type FieldKind string

const (
	KindString   FieldKind = "string"
	KindText     FieldKind = "text"
	KindBool     FieldKind = "bool"
	KindInt      FieldKind = "int"
	KindChoice   FieldKind = "choice"
	KindDate     FieldKind = "date"
	KindDateTime FieldKind = "datetime"
	// KindSkills is a many-to-many link to skills, filterable by skill ID.
	KindSkills FieldKind = "skills"
)

// Field is one column as the admin sees it. Name is the column and JSON name.
type Field struct {
	Name       string          `json:"name"`
	Label      string          `json:"label"`
	Kind       FieldKind       `json:"kind"`
	Choices    []models.Choice `json:"choices,omitempty"`
	Listed     bool            `json:"listed"`
	Filterable bool            `json:"filterable"`
	Searchable bool            `json:"searchable"`
	Editable   bool            `json:"editable"`
	ReadOnly   bool            `json:"read_only"`

	// link table used when Kind is KindSkills
	linkTable string
	ownerKey  string
}

// Descriptor is the admin configuration of one entity.
type Descriptor struct {
	Entity      string   `json:"entity"`
	DisplayName string   `json:"display_name"`
	Fields      []Field  `json:"fields"`
	Ordering    []string `json:"ordering"`
	CanCreate   bool     `json:"can_create"`
	CanDelete   bool     `json:"can_delete"`
	Singleton   bool     `json:"singleton"`

	preloads []string
	model    func() interface{}
	rows     func() interface{}
}

// Field returns the named field.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SearchOptions turns list query parameters into a whitelisted search. Unknown parameters are ignored;
// malformed values of filterable fields are reported as invalid.
func (d Descriptor) SearchOptions(values url.Values) (database.SearchOptions, error) {
	opts := database.SearchOptions{
		Term:     strings.TrimSpace(values.Get(SearchParam)),
		Filters:  map[string]interface{}{},
		Order:    d.Ordering,
		Preloads: d.preloads,
	}

	for _, f := range d.Fields {
		if f.Searchable {
			opts.SearchColumns = append(opts.SearchColumns, f.Name)
		}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f, ok := d.Field(name)
		if !ok || !f.Filterable {
			continue
		}
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		if f.Kind == KindSkills {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return opts, errs.NewInvalidFieldError(name, "expected a skill id")
			}
			opts.Links = append(opts.Links, database.LinkFilter{
				Table:     f.linkTable,
				OwnerKey:  f.ownerKey,
				TargetKey: "skill_id",
				TargetID:  uint(id),
			})
			continue
		}
		value, err := f.parse(raw)
		if err != nil {
			return opts, err
		}
		opts.Filters[name] = value
	}

	if raw := strings.TrimSpace(values.Get(OrderingParam)); raw != "" {
		order, err := d.parseOrdering(raw)
		if err != nil {
			return opts, err
		}
		opts.Order = order
	}

	if raw := values.Get(LimitParam); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return opts, errs.NewInvalidFieldError(LimitParam, "expected a non-negative integer")
		}
		opts.Limit = limit
	}
	return opts, nil
}

func (f Field) parse(raw string) (interface{}, error) {
	switch f.Kind {
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errs.NewInvalidFieldError(f.Name, "expected true or false")
		}
		return v, nil
	case KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errs.NewInvalidFieldError(f.Name, "expected an integer")
		}
		return v, nil
	case KindChoice:
		for _, c := range f.Choices {
			if c.Value == raw {
				return raw, nil
			}
		}
		return nil, errs.NewInvalidFieldError(f.Name, "not one of the available choices")
	default:
		return raw, nil
	}
}

// parseOrdering accepts a comma separated list of listed columns, each optionally prefixed with "-".
func (d Descriptor) parseOrdering(raw string) ([]string, error) {
	var order []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		f, ok := d.Field(strings.TrimPrefix(part, "-"))
		if !ok || !f.Listed || f.Kind == KindSkills {
			return nil, errs.NewInvalidFieldError(OrderingParam, "cannot order by "+part)
		}
		order = append(order, part)
	}
	return order, nil
}

// List runs the descriptor-driven listing and returns a pointer to a slice of the entity's model.
func (d Descriptor) List(ctx context.Context, db database.Database, values url.Values) (interface{}, error) {
	opts, err := d.SearchOptions(values)
	if err != nil {
		return nil, err
	}
	rows := d.rows()
	if err := db.Search(ctx, rows, d.model(), opts); err != nil {
		return nil, err
	}
	return rows, nil
}

// Registry holds the descriptors in display order.
type Registry struct {
	descriptors []Descriptor
	byEntity    map[string]int
}

func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{byEntity: make(map[string]int, len(descriptors))}
	for _, d := range descriptors {
		r.Register(d)
	}
	return r
}

// Register adds d, replacing any descriptor with the same entity.
func (r *Registry) Register(d Descriptor) {
	if i, ok := r.byEntity[d.Entity]; ok {
		r.descriptors[i] = d
		return
	}
	r.byEntity[d.Entity] = len(r.descriptors)
	r.descriptors = append(r.descriptors, d)
}

func (r *Registry) Lookup(entity string) (Descriptor, bool) {
	i, ok := r.byEntity[entity]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

func (r *Registry) All() []Descriptor {
	return append([]Descriptor(nil), r.descriptors...)
}
