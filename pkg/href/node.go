package href

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// Fetcher retrieves the raw bytes at href. Implementations typically wrap
// pkg/objectstore's ObjectStoreGateway, but any source of STAC JSON works.
type Fetcher interface {
	Fetch(ctx context.Context, href string) ([]byte, error)
}

// Node is one entity in a resolved catalog tree: its parsed entity plus the
// child catalogs/collections and items reachable from it.
type Node struct {
	Href     string
	Entity   stac.Entity
	Children []*Node
	Items    []*Node
}

// ParseEntity decodes data into the concrete stac.Entity its "type"
// discriminant names.
func ParseEntity(data []byte) (stac.Entity, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing entity discriminant: %w", err)
	}
	switch probe.Type {
	case stac.TypeCatalog:
		c := &stac.Catalog{}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, err
		}
		return c, nil
	case stac.TypeCollection:
		c := &stac.Collection{}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, err
		}
		return c, nil
	case stac.TypeItem:
		i := &stac.Item{}
		if err := json.Unmarshal(data, i); err != nil {
			return nil, err
		}
		return i, nil
	case stac.TypeItemCollection:
		ic := &stac.ItemCollection{}
		if err := json.Unmarshal(data, ic); err != nil {
			return nil, err
		}
		return ic, nil
	default:
		return nil, fmt.Errorf("%w: %q", stac.ErrUnknownType, probe.Type)
	}
}

// ItemResolver is an alternate item-discovery strategy for Resolve: given
// the freshly-fetched container entity, it returns the item Nodes to
// attach instead of Resolve walking the entity's own "item" links.
type ItemResolver interface {
	ResolveItems(ctx context.Context, fetcher Fetcher, entity stac.Entity) ([]*Node, error)
}

// ItemSearchResolver fetches items through a collection's "items" API
// endpoint (rel "items") instead of per-item links, as spec.md §4.3 allows.
// Limit and Sortby are carried as query parameters on the endpoint when
// non-zero/non-empty; a zero Limit requests the endpoint's default page.
type ItemSearchResolver struct {
	Limit  int
	Sortby string
}

// ResolveItems fetches entity's "items" link (if any) and decodes the
// response as an ItemCollection, returning one leaf Node per feature.
func (r *ItemSearchResolver) ResolveItems(ctx context.Context, fetcher Fetcher, entity stac.Entity) ([]*Node, error) {
	link := firstWithRel(entity, stac.RelItems)
	if link == nil {
		return nil, nil
	}

	itemsHref := link.Href
	if r.Limit > 0 || r.Sortby != "" {
		u, err := url.Parse(itemsHref)
		if err != nil {
			return nil, fmt.Errorf("parsing items endpoint %s: %w", itemsHref, err)
		}
		q := u.Query()
		if r.Limit > 0 {
			q.Set("limit", strconv.Itoa(r.Limit))
		}
		if r.Sortby != "" {
			q.Set("sortby", r.Sortby)
		}
		u.RawQuery = q.Encode()
		itemsHref = u.String()
	}

	data, err := fetcher.Fetch(ctx, itemsHref)
	if err != nil {
		return nil, fmt.Errorf("fetching items endpoint %s: %w", itemsHref, err)
	}
	entity2, err := ParseEntity(data)
	if err != nil {
		return nil, fmt.Errorf("parsing items endpoint %s: %w", itemsHref, err)
	}
	ic, ok := entity2.(*stac.ItemCollection)
	if !ok {
		return nil, fmt.Errorf("items endpoint %s is a %T, want an ItemCollection", itemsHref, entity2)
	}

	nodes := make([]*Node, len(ic.Features))
	for i, item := range ic.Features {
		if item.SelfHref() == "" {
			item.SetSelfHref(itemsHref)
		}
		MakeRelativeLinksAbsolute(item)
		nodes[i] = &Node{Href: item.SelfHref(), Entity: item}
	}
	return nodes, nil
}

// ResolveOption configures a single Resolve call.
type ResolveOption func(*resolveConfig)

type resolveConfig struct {
	itemResolver ItemResolver
}

// WithItemResolver makes Resolve use r to discover items instead of walking
// per-item links, at every level of the tree.
func WithItemResolver(r ItemResolver) ResolveOption {
	return func(c *resolveConfig) { c.itemResolver = r }
}

// Resolve fetches href and recursively resolves every child and item link
// it carries, spawning one goroutine per outbound link so siblings resolve
// concurrently. Each fetched entity gets its href as its self href and has
// its relative links made absolute against it (MakeRelativeLinksAbsolute)
// before its child/item links are followed. Resolved child/item links are removed from
// the container's own link list, per spec.md §4.3.
func Resolve(ctx context.Context, fetcher Fetcher, href string, opts ...ResolveOption) (*Node, error) {
	var cfg resolveConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return resolve(ctx, fetcher, href, &cfg)
}

func resolve(ctx context.Context, fetcher Fetcher, href string, cfg *resolveConfig) (*Node, error) {
	data, err := fetcher.Fetch(ctx, href)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", href, err)
	}
	entity, err := ParseEntity(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", href, err)
	}
	entity.SetSelfHref(href)
	MakeRelativeLinksAbsolute(entity)

	node := &Node{Href: href, Entity: entity}

	children := ChildLinks(entity)

	var itemNodes []*Node
	var itemLinksResolved bool
	if cfg.itemResolver != nil {
		itemNodes, err = cfg.itemResolver.ResolveItems(ctx, fetcher, entity)
		if err != nil {
			return nil, err
		}
	} else {
		itemLinksResolved = true
	}

	items := []*stac.Link(nil)
	if itemLinksResolved {
		items = ItemLinks(entity)
	}
	total := len(children) + len(items)

	if total > 0 {
		type result struct {
			index  int
			node   *Node
			isItem bool
			err    error
		}

		results := make(chan result, total)
		var wg sync.WaitGroup

		spawn := func(index int, link *stac.Link, isItem bool) {
			defer wg.Done()
			child, err := resolve(ctx, fetcher, link.Href, cfg)
			results <- result{index: index, node: child, isItem: isItem, err: err}
		}

		for i, l := range children {
			wg.Add(1)
			go spawn(i, l, false)
		}
		for i, l := range items {
			wg.Add(1)
			go spawn(i, l, true)
		}
		go func() {
			wg.Wait()
			close(results)
		}()

		childNodes := make([]*Node, len(children))
		resolvedItemNodes := make([]*Node, len(items))
		for r := range results {
			if r.err != nil {
				return nil, r.err
			}
			if r.isItem {
				resolvedItemNodes[r.index] = r.node
			} else {
				childNodes[r.index] = r.node
			}
		}

		node.Children = childNodes
		if itemLinksResolved {
			itemNodes = resolvedItemNodes
		}
	}

	node.Items = itemNodes
	removeLinksWithRel(entity, stac.RelChild, stac.RelItem)
	return node, nil
}

// Walk performs a breadth-first traversal of the tree rooted at n, invoking
// visit on every node including n itself. Traversal stops at the first
// error visit returns.
func Walk(n *Node, visit func(*Node) error) error {
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if err := visit(cur); err != nil {
			return err
		}
		queue = append(queue, cur.Children...)
		queue = append(queue, cur.Items...)
	}
	return nil
}

// Values returns every entity in the tree rooted at n, in breadth-first
// order, equivalent to the original implementation's into_values iterator.
func Values(n *Node) []stac.Entity {
	var out []stac.Entity
	_ = Walk(n, func(cur *Node) error {
		out = append(out, cur.Entity)
		return nil
	})
	return out
}
