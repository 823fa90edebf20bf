// Package report computes sales reports over snapshots of orders, meals and
// users. Every strategy is a pure function of its Input.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/shopspring/decimal"
)

type Kind int

const (
	Revenue Kind = iota + 1
	PopularDishes
	OrdersByDate
)

var kindNames = map[Kind]string{
	Revenue:       "revenue",
	PopularDishes: "popular",
	OrdersByDate:  "by-date",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("report(%d)", int(k))
}

// ParseKind maps "revenue", "popular" or "by-date" to its Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown report %q", apperror.ErrInvalidInput, s)
}

type Input struct {
	Orders []model.Order
	Meals  []model.Meal
	Users  []model.User
}

// Strategy renders one report.
type Strategy func(in Input) string

var strategies = map[Kind]Strategy{
	Revenue:       RevenueReport,
	PopularDishes: PopularDishesReport,
	OrdersByDate:  OrdersByDateReport,
}

func StrategyFor(k Kind) (Strategy, error) {
	s, ok := strategies[k]
	if !ok {
		return nil, fmt.Errorf("%w: unknown report %s", apperror.ErrInvalidInput, k)
	}
	return s, nil
}

type DayRevenue struct {
	Date    model.Date
	Orders  int
	Revenue decimal.Decimal
}

// ByDate groups orders per calendar day, earliest first.
func ByDate(orders []model.Order) []DayRevenue {
	days := map[model.Date]*DayRevenue{}
	for _, o := range orders {
		day, ok := days[o.Date]
		if !ok {
			day = &DayRevenue{Date: o.Date, Revenue: decimal.Zero}
			days[o.Date] = day
		}
		day.Orders++
		day.Revenue = day.Revenue.Add(o.TotalPrice)
	}

	out := make([]DayRevenue, 0, len(days))
	for _, d := range days {
		out = append(out, *d)
	}
	slices.SortFunc(out, func(a, b DayRevenue) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case b.Date.Before(a.Date):
			return 1
		default:
			return 0
		}
	})
	return out
}

// TotalRevenue sums the stored order totals.
func TotalRevenue(orders []model.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice)
	}
	return total
}

type DishCount struct {
	MealID   int
	Name     string
	Quantity int
}

// Dishes counts servings sold per meal, most sold first and ties by name.
// Line items whose meal no longer exists are not counted.
func Dishes(orders []model.Order, meals []model.Meal) []DishCount {
	names := make(map[int]string, len(meals))
	for _, m := range meals {
		if _, dup := names[m.ID]; !dup {
			names[m.ID] = m.Name
		}
	}

	counts := map[int]int{}
	for _, o := range orders {
		for _, l := range o.LineItems {
			if _, ok := names[l.MealID]; ok {
				counts[l.MealID] += l.Quantity
			}
		}
	}

	out := make([]DishCount, 0, len(counts))
	for id, qty := range counts {
		out = append(out, DishCount{MealID: id, Name: names[id], Quantity: qty})
	}
	slices.SortFunc(out, func(a, b DishCount) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.MealID, b.MealID)
	})
	return out
}

func RevenueReport(in Input) string {
	var b strings.Builder
	b.WriteString("=== REVENUE REPORT ===\n\n")
	fmt.Fprintf(&b, "Total revenue: %s\n\n", model.FormatMoney(TotalRevenue(in.Orders)))
	b.WriteString("Revenue by date:\n")
	for _, d := range ByDate(in.Orders) {
		fmt.Fprintf(&b, "%s: %s\n", d.Date.Display(), model.FormatMoney(d.Revenue))
	}
	return b.String()
}

func PopularDishesReport(in Input) string {
	var b strings.Builder
	b.WriteString("=== POPULAR DISHES REPORT ===\n\n")
	for _, d := range Dishes(in.Orders, in.Meals) {
		fmt.Fprintf(&b, "%s: %d servings\n", d.Name, d.Quantity)
	}
	return b.String()
}

func OrdersByDateReport(in Input) string {
	var b strings.Builder
	b.WriteString("=== ORDERS BY DATE REPORT ===\n")
	for _, d := range ByDate(in.Orders) {
		fmt.Fprintf(&b, "\nDate: %s\n", d.Date.Display())
		fmt.Fprintf(&b, "Orders: %d\n", d.Orders)
		fmt.Fprintf(&b, "Revenue: %s\n", model.FormatMoney(d.Revenue))
	}
	return b.String()
}

// Manager holds the one active strategy.
type Manager struct {
	kind     Kind
	strategy Strategy
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetStrategy(k Kind) error {
	s, err := StrategyFor(k)
	if err != nil {
		return err
	}
	m.kind = k
	m.strategy = s
	return nil
}

// Kind returns the active strategy, or 0 when none is set.
func (m *Manager) Kind() Kind { return m.kind }

func (m *Manager) Generate(in Input) (string, error) {
	if m.strategy == nil {
		return "", fmt.Errorf("%w: no report selected", apperror.ErrInvalidInput)
	}
	return m.strategy(in), nil
}
