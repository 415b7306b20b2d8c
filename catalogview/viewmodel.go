// Package catalogview derives the browsable view of one catalog: it fetches
// the catalog snapshot by slug and computes filtered, sorted and paginated
// product lists from the visitor's criteria on every read.
package catalogview

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"vitrina/models"
)

const (
	// AllCategories is the category sentinel that disables the category filter
	AllCategories = "Todos"
	// DefaultPageSize is the number of products per page
	DefaultPageSize = 16
)

// SortOrder selects the product ordering
type SortOrder string

const (
	SortNameAsc   SortOrder = "nombre-asc"
	SortPriceAsc  SortOrder = "precio-asc"
	SortPriceDesc SortOrder = "precio-desc"
)

// ParseSortOrder validates a sort order coming from a request
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(s); o {
	case SortNameAsc, SortPriceAsc, SortPriceDesc:
		return o, true
	}
	return "", false
}

// ViewMode is the presentation mode chosen by the visitor
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Criteria are the visitor-adjustable filter and sort inputs
type Criteria struct {
	SearchTerm string
	Category   string
	SortOrder  SortOrder
}

// Fetcher loads a catalog with nested items, products and images
type Fetcher interface {
	GetBySlug(ctx context.Context, slug string) (*models.Catalog, error)
}

// Option configures a ViewModel
type Option func(*ViewModel)

// WithPageSize overrides DefaultPageSize
func WithPageSize(size int) Option {
	return func(vm *ViewModel) {
		if size > 0 {
			vm.pageSize = size
		}
	}
}

// WithClock overrides the wall clock used by IsExpired
func WithClock(now func() time.Time) Option {
	return func(vm *ViewModel) { vm.now = now }
}

// WithOnPageChange registers the hook run after GoToPage, used to bring the
// results into view
func WithOnPageChange(fn func(page int)) Option {
	return func(vm *ViewModel) { vm.onPageChange = fn }
}

// WithLanguage sets the collation language for name sorting
func WithLanguage(tag language.Tag) Option {
	return func(vm *ViewModel) { vm.collator = collate.New(tag) }
}

// ViewModel holds the state of one catalog page
type ViewModel struct {
	mu           sync.Mutex
	fetcher      Fetcher
	now          func() time.Time
	pageSize     int
	onPageChange func(page int)
	collator     *collate.Collator

	catalog     *models.Catalog
	loading     bool
	err         *FetchError
	criteria    Criteria
	viewMode    ViewMode
	currentPage int
}

// New creates a ViewModel with empty criteria on page 1
func New(fetcher Fetcher, opts ...Option) *ViewModel {
	vm := &ViewModel{
		fetcher:     fetcher,
		now:         time.Now,
		pageSize:    DefaultPageSize,
		collator:    collate.New(language.Spanish),
		criteria:    Criteria{Category: AllCategories, SortOrder: SortNameAsc},
		viewMode:    ViewGrid,
		currentPage: 1,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Fetch loads the catalog for slug. Failures are stored and also returned;
// the previous snapshot is cleared either way.
func (vm *ViewModel) Fetch(ctx context.Context, slug string) error {
	vm.mu.Lock()
	vm.loading = true
	vm.catalog = nil
	vm.err = nil
	vm.mu.Unlock()

	catalog, ferr := vm.fetch(ctx, slug)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.loading = false
	if ferr != nil {
		log.Printf("❌ catalogview: fetch slug=%s failed (%s): %s", slug, ferr.Kind, ferr.Message)
		vm.err = ferr
		return ferr
	}
	vm.catalog = catalog
	return nil
}

func (vm *ViewModel) fetch(ctx context.Context, slug string) (catalog *models.Catalog, ferr *FetchError) {
	defer func() {
		if v := recover(); v != nil {
			catalog, ferr = nil, recovered(v)
		}
	}()

	catalog, err := vm.fetcher.GetBySlug(ctx, slug)
	if err != nil {
		return nil, classify(err)
	}
	if catalog == nil {
		return nil, &FetchError{Kind: KindNotFound, Message: NotFoundMessage}
	}
	return catalog, nil
}

// Loading reports whether a fetch is in progress
func (vm *ViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

// Err returns the stored fetch error, or nil
func (vm *ViewModel) Err() *FetchError {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Catalog returns the fetched snapshot, or nil
func (vm *ViewModel) Catalog() *models.Catalog {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.catalog
}

// Criteria returns the current filter and sort inputs
func (vm *ViewModel) Criteria() Criteria {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.criteria
}

// SetSearchTerm changes the search term; a change resets the page to 1
func (vm *ViewModel) SetSearchTerm(term string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.criteria.SearchTerm != term {
		vm.criteria.SearchTerm = term
		vm.currentPage = 1
	}
}

// SetCategory changes the active category; "" selects AllCategories. A
// change resets the page to 1.
func (vm *ViewModel) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.criteria.Category != category {
		vm.criteria.Category = category
		vm.currentPage = 1
	}
}

// SetSortOrder changes the sort order; a change resets the page to 1
func (vm *ViewModel) SetSortOrder(order SortOrder) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.criteria.SortOrder != order {
		vm.criteria.SortOrder = order
		vm.currentPage = 1
	}
}

// SetViewMode switches between grid and list presentation
func (vm *ViewModel) SetViewMode(mode ViewMode) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewMode = mode
}

// ViewMode returns the presentation mode
func (vm *ViewModel) ViewMode() ViewMode {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.viewMode
}

// GoToPage moves to page and runs the page change hook with the page that is
// actually shown after clamping
func (vm *ViewModel) GoToPage(page int) {
	vm.mu.Lock()
	vm.currentPage = max(page, 1)
	shown := vm.clampLocked(len(vm.filteredLocked()))
	hook := vm.onPageChange
	vm.mu.Unlock()

	if hook != nil {
		hook(shown)
	}
}

// CurrentPage returns the page, clamped into range
func (vm *ViewModel) CurrentPage() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.clampLocked(len(vm.filteredLocked()))
}

// PageSize returns the fixed page size
func (vm *ViewModel) PageSize() int {
	return vm.pageSize
}

// IsExpired reports whether the catalog has an expiration strictly before now
func (vm *ViewModel) IsExpired() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.expiredLocked()
}

// BaseProducts returns the resolved products of all valid items
func (vm *ViewModel) BaseProducts() []models.Product {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return baseProducts(vm.catalog)
}

// UniqueCategories returns AllCategories followed by the sorted categories
func (vm *ViewModel) UniqueCategories() []string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return uniqueCategories(baseProducts(vm.catalog), vm.collator)
}

// FilteredAndSorted returns the products matching the criteria, sorted
func (vm *ViewModel) FilteredAndSorted() []models.Product {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.filteredLocked()
}

// TotalPages returns ceil(len(FilteredAndSorted) / PageSize)
func (vm *ViewModel) TotalPages() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return totalPages(len(vm.filteredLocked()), vm.pageSize)
}

// PaginatedProducts returns the current page of FilteredAndSorted, clamping
// the current page first
func (vm *ViewModel) PaginatedProducts() []models.Product {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	filtered := vm.filteredLocked()
	page := vm.clampLocked(len(filtered))
	return paginate(filtered, page, vm.pageSize)
}

// View is a consistent snapshot of every derived value
type View struct {
	Catalog     *models.Catalog
	Loading     bool
	Err         *FetchError
	IsExpired   bool
	Criteria    Criteria
	ViewMode    ViewMode
	Categories  []string
	Products    []models.Product
	TotalCount  int
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// Snapshot computes all derived values under one lock
func (vm *ViewModel) Snapshot() View {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	filtered := vm.filteredLocked()
	page := vm.clampLocked(len(filtered))
	return View{
		Catalog:     vm.catalog,
		Loading:     vm.loading,
		Err:         vm.err,
		IsExpired:   vm.expiredLocked(),
		Criteria:    vm.criteria,
		ViewMode:    vm.viewMode,
		Categories:  uniqueCategories(baseProducts(vm.catalog), vm.collator),
		Products:    paginate(filtered, page, vm.pageSize),
		TotalCount:  len(filtered),
		TotalPages:  totalPages(len(filtered), vm.pageSize),
		CurrentPage: page,
		PageSize:    vm.pageSize,
	}
}

func (vm *ViewModel) expiredLocked() bool {
	if vm.catalog == nil || vm.catalog.ExpiresAt == nil {
		return false
	}
	return vm.catalog.ExpiresAt.Before(vm.now())
}

func (vm *ViewModel) filteredLocked() []models.Product {
	return filterAndSort(baseProducts(vm.catalog), vm.criteria, vm.collator)
}

// clampLocked stores the clamped page so a shrunken result set moves the
// visitor back into range. With no pages the page reads as 1 but is kept.
func (vm *ViewModel) clampLocked(count int) int {
	total := totalPages(count, vm.pageSize)
	if total == 0 {
		return 1
	}
	vm.currentPage = clampPage(vm.currentPage, total)
	return vm.currentPage
}
