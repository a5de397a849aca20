package hapio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
)

// PageMeta is the meta object of a list response.
type PageMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	LastPage    int  `json:"last_page"    yaml:"last_page"`
	From        *int `json:"from"         yaml:"from"`
	To          *int `json:"to"           yaml:"to"`
	PerPage     int  `json:"per_page"     yaml:"per_page"`
	Total       int  `json:"total"        yaml:"total"`
}

// PageLinks are the navigational links of a list response. A nil link is
// absent.
type PageLinks struct {
	First *string `json:"first" yaml:"first"`
	Last  *string `json:"last"  yaml:"last"`
	Prev  *string `json:"prev"  yaml:"prev"`
	Next  *string `json:"next"  yaml:"next"`
}

// PageFollower fetches the page a link points to.
type PageFollower[T Entity] func(ctx context.Context, link string) (*PaginatedResponse[T], error)

// PaginatedResponse is one page of list results. Navigation methods issue
// a new request each time they are called; nothing is cached.
type PaginatedResponse[T Entity] struct {
	items  []T
	meta   PageMeta
	links  PageLinks
	follow PageFollower[T]
}

// NewPaginatedResponse creates a page. follow may be nil, in which case
// every navigation method reports an absent page.
func NewPaginatedResponse[T Entity](items []T, meta PageMeta, links PageLinks, follow PageFollower[T]) *PaginatedResponse[T] {
	return &PaginatedResponse[T]{
		items:  items,
		meta:   meta,
		links:  links,
		follow: follow,
	}
}

// Items returns the entities of the page. The returned slice is a copy.
func (p *PaginatedResponse[T]) Items() []T {
	items := make([]T, len(p.items))
	copy(items, p.items)

	return items
}

// All iterates over the entities of the page.
func (p *PaginatedResponse[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range p.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Len returns the number of entities on the page.
func (p *PaginatedResponse[T]) Len() int {
	return len(p.items)
}

// HasMoreItems reports whether pages follow the current one.
func (p *PaginatedResponse[T]) HasMoreItems() bool {
	return p.meta.CurrentPage < p.meta.LastPage
}

// Meta returns the page metadata.
func (p *PaginatedResponse[T]) Meta() PageMeta {
	return p.meta
}

// Links returns the navigational links.
func (p *PaginatedResponse[T]) Links() PageLinks {
	return p.links
}

// CurrentPageNumber returns the 1-based number of this page.
func (p *PaginatedResponse[T]) CurrentPageNumber() int { return p.meta.CurrentPage }

// LastPageNumber returns the number of the last page.
func (p *PaginatedResponse[T]) LastPageNumber() int { return p.meta.LastPage }

// ItemsPerPage returns the page size used by the API.
func (p *PaginatedResponse[T]) ItemsPerPage() int { return p.meta.PerPage }

// TotalItems returns the number of items across all pages.
func (p *PaginatedResponse[T]) TotalItems() int { return p.meta.Total }

// FromIndex is the 1-based index of the first item, or 0 for an empty page.
func (p *PaginatedResponse[T]) FromIndex() int {
	if p.meta.From == nil {
		return 0
	}

	return *p.meta.From
}

// ToIndex is the 1-based index of the last item, or 0 for an empty page.
func (p *PaginatedResponse[T]) ToIndex() int {
	if p.meta.To == nil {
		return 0
	}

	return *p.meta.To
}

// FirstPageLink returns the first page link, or "".
func (p *PaginatedResponse[T]) FirstPageLink() string { return linkValue(p.links.First) }

// LastPageLink returns the last page link, or "".
func (p *PaginatedResponse[T]) LastPageLink() string { return linkValue(p.links.Last) }

// PreviousPageLink returns the previous page link, or "".
func (p *PaginatedResponse[T]) PreviousPageLink() string { return linkValue(p.links.Prev) }

// NextPageLink returns the next page link, or "".
func (p *PaginatedResponse[T]) NextPageLink() string { return linkValue(p.links.Next) }

// NextPage fetches the next page. It returns nil, nil when there is no
// next link.
func (p *PaginatedResponse[T]) NextPage(ctx context.Context) (*PaginatedResponse[T], error) {
	return p.followLink(ctx, p.links.Next)
}

// PreviousPage fetches the previous page, or nil, nil.
func (p *PaginatedResponse[T]) PreviousPage(ctx context.Context) (*PaginatedResponse[T], error) {
	return p.followLink(ctx, p.links.Prev)
}

// FirstPage fetches the first page, or nil, nil.
func (p *PaginatedResponse[T]) FirstPage(ctx context.Context) (*PaginatedResponse[T], error) {
	return p.followLink(ctx, p.links.First)
}

// LastPage fetches the last page, or nil, nil.
func (p *PaginatedResponse[T]) LastPage(ctx context.Context) (*PaginatedResponse[T], error) {
	return p.followLink(ctx, p.links.Last)
}

func (p *PaginatedResponse[T]) followLink(ctx context.Context, link *string) (*PaginatedResponse[T], error) {
	if link == nil || *link == "" || p.follow == nil {
		return nil, nil //nolint:nilnil // an absent page is not an error
	}

	page, err := p.follow(ctx, *link)
	if err != nil {
		return nil, fmt.Errorf("following page link: %w", err)
	}

	return page, nil
}

func linkValue(link *string) string {
	if link == nil {
		return ""
	}

	return *link
}

// listEnvelope is the wire shape of a list response.
type listEnvelope struct {
	Data  []json.RawMessage `json:"data"`
	Meta  PageMeta          `json:"meta"`
	Links PageLinks         `json:"links"`
}

// DecodePage decodes a list response body, hydrating every item of data with
// an entity from newEntity.
func DecodePage[T Entity](body []byte, newEntity func() T) ([]T, PageMeta, PageLinks, error) {
	var envelope listEnvelope

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	err := decoder.Decode(&envelope)
	if err != nil {
		return nil, PageMeta{}, PageLinks{}, fmt.Errorf("decoding list response: %w", err)
	}

	items, err := hydrateAll(envelope.Data, newEntity)
	if err != nil {
		return nil, PageMeta{}, PageLinks{}, err
	}

	return items, envelope.Meta, envelope.Links, nil
}

// DecodeList decodes a bare JSON array of entities.
func DecodeList[T Entity](body []byte, newEntity func() T) ([]T, error) {
	var raw []json.RawMessage

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}

	return hydrateAll(raw, newEntity)
}

// DecodeEntity hydrates a single entity response.
func DecodeEntity[T Entity](body []byte, newEntity func() T) (T, error) {
	entity := newEntity()

	raw, err := DecodeObject(body)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("decoding %s response: %w", entity.Kind(), err)
	}

	entity.Hydrate(raw)

	return entity, nil
}

func hydrateAll[T Entity](raw []json.RawMessage, newEntity func() T) ([]T, error) {
	items := make([]T, 0, len(raw))

	for i, data := range raw {
		item, err := DecodeEntity(data, newEntity)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		items = append(items, item)
	}

	return items, nil
}
