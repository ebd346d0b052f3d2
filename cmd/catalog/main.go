// Command catalog previews storefront pages in the terminal.
//
//	catalog [-api URL] [-locale ar] [-once] home|shop|product [slug]
//
// Without -once every line read from stdin is taken as a locale code and the
// page is reloaded in that language. The preview runs until interrupted.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/example/fatales/internal/cms"
	"github.com/example/fatales/internal/config"
	"github.com/example/fatales/internal/locale"
	"github.com/example/fatales/internal/media"
	"github.com/example/fatales/internal/storefront"
)

func main() {
	cfg := config.Load()

	apiURL := flag.String("api", cfg.CMSAPIURL, "CMS API base URL")
	lang := flag.String("locale", locale.Default.String(), "initial locale (en, ar, fr)")
	once := flag.Bool("once", false, "render once and exit")
	category := flag.String("category", "", "shop: category id to filter by")
	timeout := flag.Duration("timeout", cfg.CMSTimeout, "CMS request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] home|shop|product [slug]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	svc := storefront.NewService(
		cms.New(*apiURL, cms.WithTimeout(*timeout)),
		media.NewResolver(*apiURL, nil),
	)

	fetch, err := pageFetcher(svc, flag.Arg(0), flag.Arg(1), *category)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := locale.Normalize(*lang)
	if *once {
		page, err := fetch(ctx, start)
		if err != nil {
			log.Fatalf("load %s: %v", flag.Arg(0), err)
		}
		printJSON(page)
		return
	}

	p := newPreview(ctx)
	loader := storefront.NewLoader(fetch, p.onChange)

	go loader.Load(ctx, start)

	lines := make(chan string)
	go func(out chan<- string) {
		defer close(out)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			out <- scanner.Text()
		}
	}(lines)

	for {
		select {
		case <-ctx.Done():
			loader.Stop()
			p.wait()
			return
		case line, ok := <-lines:
			if !ok {
				// Keep the carousel running until interrupted.
				lines = nil
				continue
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			go loader.Load(ctx, locale.Normalize(line))
		}
	}
}

func pageFetcher(svc *storefront.Service, page, slug, category string) (storefront.FetchFunc[any], error) {
	switch page {
	case "home":
		return func(ctx context.Context, loc locale.Locale) (any, error) {
			return svc.Home(ctx, loc)
		}, nil
	case "shop":
		return func(ctx context.Context, loc locale.Locale) (any, error) {
			return svc.Shop(ctx, loc, storefront.ShopQuery{CategoryID: category})
		}, nil
	case "product":
		return func(ctx context.Context, loc locale.Locale) (any, error) {
			return svc.Product(ctx, loc, slug)
		}, nil
	default:
		return nil, fmt.Errorf("unknown page %q", page)
	}
}

// preview renders loader snapshots and drives the hero carousel of the home
// page.
type preview struct {
	ctx context.Context

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newPreview(ctx context.Context) *preview {
	return &preview{ctx: ctx}
}

func (p *preview) onChange(s storefront.Snapshot[any]) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", s.Locale, s.State)

	switch s.State {
	case storefront.StateLoading:
		p.stopCarousel()
	case storefront.StateError:
		fmt.Fprintf(os.Stderr, "error: %v\n", s.Err)
	case storefront.StateSuccess:
		printJSON(s.Data)
		if home, ok := s.Data.(*storefront.HomePage); ok {
			p.startCarousel(home.HeroSlides)
		}
	}
}

func (p *preview) startCarousel(slides []storefront.HeroSlideView) {
	p.stopCarousel()
	if len(slides) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(p.ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	carousel := storefront.NewCarousel(len(slides))
	fmt.Printf("hero: %s\n", slides[0].Title)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		carousel.Run(ctx, storefront.HeroInterval, func(i int) {
			fmt.Printf("hero: %s\n", slides[i].Title)
		})
	}()
}

func (p *preview) stopCarousel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *preview) wait() {
	p.stopCarousel()
	waitTimeout(&p.wg, time.Second)
}

func waitTimeout(wg *sync.WaitGroup, d time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("encode: %v", err)
	}
}
