package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/fatales/internal/cms"
	"github.com/example/fatales/internal/locale"
	"github.com/example/fatales/internal/media"
)

type fakeCatalog struct {
	mu sync.Mutex

	products   []cms.Product
	categories []cms.Category
	slides     []cms.HeroSlide

	productsErr error
	slidesErr   error

	featuredCalls []int
	locales       []string
}

func (f *fakeCatalog) record(loc string) {
	f.mu.Lock()
	f.locales = append(f.locales, loc)
	f.mu.Unlock()
}

func (f *fakeCatalog) GetProducts(_ context.Context, params cms.ProductQuery) (*cms.Page[cms.Product], error) {
	f.record(params.Locale)
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return &cms.Page[cms.Product]{Docs: f.products, TotalDocs: len(f.products), Page: 1, TotalPages: 1}, nil
}

func (f *fakeCatalog) GetFeaturedProducts(_ context.Context, limit int, loc string) ([]cms.Product, error) {
	f.record(loc)
	f.mu.Lock()
	f.featuredCalls = append(f.featuredCalls, limit)
	f.mu.Unlock()
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	var out []cms.Product
	for _, p := range f.products {
		if p.Featured && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetProductBySlug(_ context.Context, slug, loc string) (*cms.Product, error) {
	f.record(loc)
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	for i := range f.products {
		if f.products[i].Slug == slug {
			return &f.products[i], nil
		}
	}
	return nil, cms.ErrNotFound
}

func (f *fakeCatalog) GetCategories(_ context.Context, loc string) ([]cms.Category, error) {
	f.record(loc)
	return f.categories, nil
}

func (f *fakeCatalog) GetHeroSlides(_ context.Context, loc string) ([]cms.HeroSlide, error) {
	f.record(loc)
	if f.slidesErr != nil {
		return nil, f.slidesErr
	}
	return f.slides, nil
}

func ptr(v float64) *float64 { return &v }

func sampleCatalog() *fakeCatalog {
	him := cms.Category{ID: "c-him", Name: "For Him", Slug: "for-him", DisplayOrder: 1}
	her := cms.Category{ID: "c-her", Name: "For Her", Slug: "for-her", DisplayOrder: 0}
	unisex := cms.Category{ID: "c-uni", Name: "Unisex", Slug: "unisex", DisplayOrder: 1}

	return &fakeCatalog{
		categories: []cms.Category{him, her, unisex},
		products: []cms.Product{
			{
				ID: "p1", Slug: "midnight-oud", Name: "Midnight Oud", Price: 4500, CompareAtPrice: ptr(5200),
				Category: him, ParfumType: cms.EauDeParfum, Featured: true, InStock: true,
				Images: []cms.ProductImage{{Image: media.Image{Ref: media.Asset{SecureURL: "https://res/upload/v1/oud.jpg", Alt: "Oud"}}}},
				Notes:  &cms.Notes{Top: "Saffron", Base: "Oud"},
			},
			{
				ID: "p2", Slug: "rose-noir", Name: "Rose Noir", Price: 3900, CompareAtPrice: ptr(3000),
				Category: her, ParfumType: "body_mist", NewArrival: true,
				Images: []cms.ProductImage{{Image: media.FromString("/media/rose.jpg")}},
			},
			{
				ID: "p3", Slug: "golden-amber", Name: "Golden Amber", Price: 1000,
				Category: him, ParfumType: cms.ExtraitDeParfum, Featured: true,
			},
		},
		slides: []cms.HeroSlide{
			{ID: "s2", Title: "Scent of the Golden Hour", DisplayOrder: 2},
			{ID: "s1", Title: "Aura & Essence", Subtitle: "Limited", DisplayOrder: 1,
				PrimaryButton: cms.Button{Text: "Buy", Link: "/product/midnight-oud"}},
		},
	}
}

func newService(c Catalog) *Service {
	return NewService(c, media.NewResolver("http://localhost:4000/api", nil))
}

func TestHomeBuildsAllSections(t *testing.T) {
	cat := sampleCatalog()
	page, err := newService(cat).Home(context.Background(), locale.Arabic)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}

	if page.Locale != locale.Arabic || page.Dir != "rtl" {
		t.Fatalf("meta = %+v", page.Meta)
	}
	if len(page.Featured) != 2 || page.Featured[0].PriceLabel != "4,500 أوقية" {
		t.Fatalf("featured = %+v", page.Featured)
	}
	if cat.featuredCalls[0] != HomeFeaturedLimit {
		t.Fatalf("featured limit = %d", cat.featuredCalls[0])
	}
	for _, l := range cat.locales {
		if l != "ar" {
			t.Fatalf("catalog called with locale %q, want ar", l)
		}
	}

	if page.HeroSlides[0].ID != "s1" || page.HeroSlides[0].Primary.Text != "Buy" {
		t.Fatalf("first slide = %+v", page.HeroSlides[0])
	}
	second := page.HeroSlides[1]
	if second.Subtitle != "تشكيلة جديدة" || second.Primary.Link != "/shop" || second.Secondary.Link != "/guide" || second.Secondary.Text != "اكتشف المزيد" {
		t.Fatalf("defaults not applied: %+v", second)
	}
	if len(page.Reviews) != len(reviewPaths) {
		t.Fatalf("reviews = %v", page.Reviews)
	}
}

func TestHomeFailsWhenAnyFetchFails(t *testing.T) {
	cat := sampleCatalog()
	cat.slidesErr = &cms.FetchError{Status: 503}

	page, err := newService(cat).Home(context.Background(), locale.English)
	if page != nil {
		t.Fatal("expected no partial page")
	}
	var fe *cms.FetchError
	if !errors.As(err, &fe) || fe.Status != 503 {
		t.Fatalf("err = %v, want wrapped FetchError", err)
	}
}

func TestCategoriesStableByDisplayOrder(t *testing.T) {
	p := NewPresenter(locale.English, media.NewResolver("http://localhost:4000/api", nil))
	views := p.Categories(sampleCatalog().categories)

	got := []string{views[0].ID, views[1].ID, views[2].ID}
	want := []string{"c-her", "c-him", "c-uni"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestShopFiltersByCategory(t *testing.T) {
	svc := newService(sampleCatalog())

	all, err := svc.Shop(context.Background(), locale.English, ShopQuery{})
	if err != nil {
		t.Fatalf("Shop: %v", err)
	}
	if len(all.Products) != 3 || len(all.Categories) != 3 {
		t.Fatalf("shop = %+v", all)
	}

	filtered, err := svc.Shop(context.Background(), locale.English, ShopQuery{CategoryID: "c-him"})
	if err != nil {
		t.Fatalf("Shop filtered: %v", err)
	}
	if len(filtered.Products) != 2 || filtered.SelectedCategory != "c-him" {
		t.Fatalf("filtered = %+v", filtered.Products)
	}
	if filtered.Products[0].ID != "p1" || filtered.Products[1].ID != "p3" {
		t.Fatal("filter must keep server order")
	}
}

func TestShopFailure(t *testing.T) {
	cat := sampleCatalog()
	cat.productsErr = errors.New("connection refused")
	if _, err := newService(cat).Shop(context.Background(), locale.English, ShopQuery{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCardFormatting(t *testing.T) {
	p := NewPresenter(locale.English, media.NewResolver("http://localhost:4000/api", nil))
	cat := sampleCatalog()

	oud := p.Card(cat.products[0])
	if oud.Badge != BadgeBestseller || oud.CompareAtLabel != "5,200 MRU" || oud.TypeLabel != "Eau de Parfum" {
		t.Fatalf("oud = %+v", oud)
	}
	if oud.Image != "https://res/upload/f_auto,q_auto/v1/oud.jpg" || oud.ImageAlt != "Oud" {
		t.Fatalf("oud image = %q", oud.Image)
	}

	rose := p.Card(cat.products[1])
	if rose.Badge != BadgeNew || rose.CompareAtLabel != "" || rose.TypeLabel != "body_mist" {
		t.Fatalf("rose = %+v", rose)
	}
	if rose.Image != "http://localhost:4000/media/rose.jpg" {
		t.Fatalf("rose image = %q", rose.Image)
	}

	amber := p.Card(cat.products[2])
	if amber.Image != "" || amber.PriceLabel != "1,000 MRU" {
		t.Fatalf("amber = %+v", amber)
	}
}

func TestProductBySlug(t *testing.T) {
	page, err := newService(sampleCatalog()).Product(context.Background(), locale.French, "midnight-oud")
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	d := page.Product
	if d.Notes.Top != "Saffron" || d.Notes.Middle != "-" || d.Notes.Base != "Oud" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if d.Size != "50ml" || d.Category == nil || d.Category.ID != "c-him" {
		t.Fatalf("detail = %+v", d)
	}
	if len(d.Images) != 1 {
		t.Fatalf("images = %v", d.Images)
	}
}

func TestProductNotFound(t *testing.T) {
	_, err := newService(sampleCatalog()).Product(context.Background(), locale.English, "nope")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}

	empty := &fakeCatalog{}
	_, err = newService(empty).Product(context.Background(), locale.English, "")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("fallback err = %v, want ErrProductNotFound", err)
	}
}

func TestProductFallsBackToFeatured(t *testing.T) {
	cat := sampleCatalog()
	page, err := newService(cat).Product(context.Background(), locale.English, "")
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if page.Product.ID != "p1" || cat.featuredCalls[0] != 1 {
		t.Fatalf("fallback product = %s (limit %v)", page.Product.ID, cat.featuredCalls)
	}
	notes := page.Product.Notes
	if notes.Middle != "-" {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestDetailOmitsNullRichText(t *testing.T) {
	p := NewPresenter(locale.English, media.NewResolver("http://localhost:4000/api", nil))
	d := p.Detail(cms.Product{ID: "x", FullDescription: json.RawMessage("null")})
	if d.FullDescription != nil {
		t.Fatalf("full description = %v", d.FullDescription)
	}
	if d.Notes != (NotesView{Top: "-", Middle: "-", Base: "-"}) {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestLoaderDropsStaleResults(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context, loc locale.Locale) (string, error) {
		if loc == locale.English {
			<-release
			return "stale", nil
		}
		return "fresh-" + loc.String(), nil
	}

	var (
		mu     sync.Mutex
		states []State
	)
	l := NewLoader(fetch, func(s Snapshot[string]) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})

	slow := make(chan bool, 1)
	go func() { slow <- l.Load(context.Background(), locale.English) }()

	waitFor(t, func() bool { return l.Snapshot().State == StateLoading })

	if !l.Load(context.Background(), locale.Arabic) {
		t.Fatal("newest load must commit")
	}
	close(release)
	if <-slow {
		t.Fatal("superseded load must not commit")
	}

	snap := l.Snapshot()
	if snap.State != StateSuccess || snap.Data != "fresh-ar" || snap.Locale != locale.Arabic {
		t.Fatalf("snapshot = %+v", snap)
	}
	mu.Lock()
	defer mu.Unlock()
	if states[len(states)-1] != StateSuccess {
		t.Fatalf("states = %v", states)
	}
}

func TestLoaderNeverReportsSupersededLoading(t *testing.T) {
	fetch := func(ctx context.Context, loc locale.Locale) (string, error) {
		if loc == locale.English {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "fresh-" + loc.String(), nil
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu   sync.Mutex
		seen []Snapshot[string]
	)
	l := NewLoader(fetch, func(s Snapshot[string]) {
		if s.Generation == 1 && s.State == StateLoading {
			close(entered)
			<-release
		}
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	first := make(chan bool, 1)
	go func() { first <- l.Load(context.Background(), locale.English) }()
	<-entered

	second := make(chan bool, 1)
	go func() { second <- l.Load(context.Background(), locale.Arabic) }()
	waitFor(t, func() bool { return l.Snapshot().Generation == 2 })
	close(release)

	if !<-second {
		t.Fatal("newest load must commit")
	}
	if <-first {
		t.Fatal("superseded load must not commit")
	}

	mu.Lock()
	defer mu.Unlock()
	last := seen[len(seen)-1]
	if last.Generation != 2 || last.State != StateSuccess || last.Locale != locale.Arabic {
		t.Fatalf("last notification = gen %d %s/%s", last.Generation, last.State, last.Locale)
	}
	var newest uint64
	for _, s := range seen {
		if s.Generation < newest {
			t.Fatalf("gen %d %s reported after gen %d", s.Generation, s.State, newest)
		}
		newest = s.Generation
	}
}

func TestLoaderCancelsSupersededFetch(t *testing.T) {
	cancelled := make(chan struct{})
	fetch := func(ctx context.Context, loc locale.Locale) (int, error) {
		if loc == locale.French {
			<-ctx.Done()
			close(cancelled)
			return 0, ctx.Err()
		}
		return 1, nil
	}
	l := NewLoader[int](fetch, nil)

	go l.Load(context.Background(), locale.French)
	waitFor(t, func() bool { return l.Snapshot().Locale == locale.French })

	l.Load(context.Background(), locale.English)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("previous fetch was not cancelled")
	}
	if snap := l.Snapshot(); snap.State != StateSuccess || snap.Data != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestLoaderError(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader(func(context.Context, locale.Locale) (int, error) { return 0, boom }, nil)
	if l.Snapshot().State != StateIdle {
		t.Fatal("new loader must be idle")
	}
	l.Load(context.Background(), locale.English)
	snap := l.Snapshot()
	if snap.State != StateError || !errors.Is(snap.Err, boom) {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.State.String() != "error" {
		t.Fatalf("State.String() = %q", snap.State.String())
	}
}

func TestCarouselWraps(t *testing.T) {
	c := NewCarousel(3)
	got := []int{c.Next(), c.Next(), c.Next(), c.Next()}
	want := []int{1, 2, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next sequence = %v, want %v", got, want)
		}
	}

	c.Reset(0)
	if c.Next() != 0 || c.Index() != 0 {
		t.Fatal("empty carousel must stay at 0")
	}
}

func TestCarouselRun(t *testing.T) {
	c := NewCarousel(2)
	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan int, 4)

	done := make(chan struct{})
	go func() {
		c.Run(ctx, 5*time.Millisecond, func(i int) { ticks <- i })
		close(done)
	}()

	if first := <-ticks; first != 1 {
		t.Fatalf("first tick = %d, want 1", first)
	}
	if second := <-ticks; second != 0 {
		t.Fatalf("second tick = %d, want 0", second)
	}
	cancel()
	<-done
}

func TestCarouselSingleItemNeverTicks(t *testing.T) {
	c := NewCarousel(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	c.Run(ctx, time.Millisecond, func(int) { t.Error("unexpected tick") })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
