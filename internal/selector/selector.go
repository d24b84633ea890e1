// Package selector holds the list-and-pick state behind the patient and plan
// pickers. Selectors perform no I/O and are not safe for concurrent use; the
// owning page drives them from its event loop.
package selector

import (
	"fmt"
	"strings"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// IdentityFunc returns the stable identity of an item. It is mandatory: there
// is no positional fallback.
type IdentityFunc[T any] func(T) domain.ID

// FieldsFunc returns the text fields a filter query is matched against.
type FieldsFunc[T any] func(T) []string

type Option[T any] func(*Selector[T])

// WithOnSelect registers a callback fired when the selection changes.
func WithOnSelect[T any](fn func(T)) Option[T] {
	return func(s *Selector[T]) { s.onSelect = fn }
}

// Selector is an ordered listing with single-valued selection.
type Selector[T any] struct {
	identity IdentityFunc[T]
	fields   FieldsFunc[T]
	onSelect func(T)

	items    []T
	index    map[domain.ID]int
	selected domain.ID
}

// View is what a picker renders for a query.
type View[T any] struct {
	Items    []T
	NotFound bool
}

func New[T any](identity IdentityFunc[T], fields FieldsFunc[T], opts ...Option[T]) *Selector[T] {
	if identity == nil {
		panic("selector: identity accessor is required")
	}
	if fields == nil {
		fields = func(T) []string { return nil }
	}
	s := &Selector[T]{
		identity: identity,
		fields:   fields,
		index:    map[domain.ID]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewScopeSelector builds a selector over patients (or doctors) that filters
// on display name or secondary label.
func NewScopeSelector(opts ...Option[domain.ScopedEntity]) *Selector[domain.ScopedEntity] {
	return New(domain.EntityID, func(e domain.ScopedEntity) []string {
		return []string{e.DisplayName, e.SecondaryLabel}
	}, opts...)
}

// SetItems replaces the listing. The previous selection survives only if its
// identity is still present.
func (s *Selector[T]) SetItems(items []T) error {
	index := make(map[domain.ID]int, len(items))
	for i, it := range items {
		id := s.identity(it)
		if id.IsZero() {
			return fmt.Errorf("%w: position %d", ErrInvalidIdentity, i)
		}
		if _, dup := index[id]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateIdentity, id)
		}
		index[id] = i
	}

	s.items = append([]T(nil), items...)
	s.index = index
	if _, ok := s.index[s.selected]; !ok {
		s.selected = ""
	}
	return nil
}

// Items returns the unfiltered listing in source order.
func (s *Selector[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// Filter returns the items whose fields contain query, case-insensitively.
// Only the empty query returns the source listing untouched; whitespace is
// matched like any other character.
func (s *Selector[T]) Filter(query string) []T {
	if query == "" {
		return s.Items()
	}

	q := strings.ToLower(query)
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		for _, f := range s.fields(it) {
			if f != "" && strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func (s *Selector[T]) View(query string) View[T] {
	items := s.Filter(query)
	return View[T]{Items: items, NotFound: len(items) == 0}
}

// Select makes id the current selection. Selecting the current item again is
// a no-op and reports changed=false.
func (s *Selector[T]) Select(id domain.ID) (changed bool, err error) {
	i, ok := s.index[id]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if s.selected == id {
		return false, nil
	}
	s.selected = id
	if s.onSelect != nil {
		s.onSelect(s.items[i])
	}
	return true, nil
}

// Selected returns the selected item, if any.
func (s *Selector[T]) Selected() (T, bool) {
	var zero T
	if s.selected.IsZero() {
		return zero, false
	}
	return s.items[s.index[s.selected]], true
}

func (s *Selector[T]) SelectedID() domain.ID { return s.selected }

// IsSelected reports whether id is the current selection.
func (s *Selector[T]) IsSelected(id domain.ID) bool {
	return !id.IsZero() && s.selected == id
}

func (s *Selector[T]) Clear() { s.selected = "" }
