package store

import (
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
)

// Kind selects an entity collection and its id counter.
type Kind int

const (
	KindUser Kind = iota
	KindCategory
	KindMeal
	KindOrder
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindCategory:
		return "category"
	case KindMeal:
		return "meal"
	case KindOrder:
		return "order"
	default:
		return "unknown"
	}
}

// Document is the persisted JSON shape.
type Document struct {
	Users      []model.User     `json:"users"`
	Categories []model.Category `json:"categories"`
	Meals      []model.Meal     `json:"meals"`
	Orders     []model.Order    `json:"orders"`
}

// Data is the in-memory state owned by a Store. Callers only ever see it inside
// View and Update callbacks.
type Data struct {
	Users      []model.User
	Categories []model.Category
	Meals      []model.Meal
	Orders     []model.Order

	next [kindCount]int
}

func newData() *Data {
	d := &Data{}
	for k := range d.next {
		d.next[k] = 1
	}
	return d
}

// NextID returns the current counter for k and advances it.
func (d *Data) NextID(k Kind) int {
	id := d.next[k]
	d.next[k]++
	return id
}

// Reserve moves the counter for k past id, so ids seen on load or import are
// never handed out again.
func (d *Data) Reserve(k Kind, id int) {
	if id >= d.next[k] {
		d.next[k] = id + 1
	}
}

func (d *Data) UserIndex(id int) int {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) CategoryIndex(id int) int {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) MealIndex(id int) int {
	for i := range d.Meals {
		if d.Meals[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) OrderIndex(id int) int {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) document() *Document {
	return &Document{
		Users:      nonNil(d.Users),
		Categories: nonNil(d.Categories),
		Meals:      nonNil(d.Meals),
		Orders:     nonNil(d.Orders),
	}
}

func (d *Data) clone() *Data {
	c := &Data{
		Users:      append([]model.User(nil), d.Users...),
		Categories: append([]model.Category(nil), d.Categories...),
		Meals:      append([]model.Meal(nil), d.Meals...),
		Orders:     make([]model.Order, len(d.Orders)),
		next:       d.next,
	}
	for i, o := range d.Orders {
		c.Orders[i] = o.Clone()
	}
	return c
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
