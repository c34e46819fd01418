package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/nps-sites/internal/site"
)

const (
	Origin       = "https://www.nps.gov"
	DirectoryURL = "https://www.nps.gov/index.htm"
)

var (
	// ErrStructure means an expected element is missing from a page,
	// usually because the upstream markup changed.
	ErrStructure = errors.New("unexpected page structure")

	// ErrUnknownState means the directory page has no entry for a state.
	ErrUnknownState = errors.New("state not listed in directory")
)

// Getter returns the body for a URL, typically from the response cache.
type Getter interface {
	Get(url string) (string, error)
}

// Scraper resolves states, lists their sites and parses site details.
type Scraper struct {
	getter       Getter
	origin       string
	directoryURL string
}

// New creates a Scraper for nps.gov backed by getter.
func New(getter Getter) *Scraper {
	return &Scraper{
		getter:       getter,
		origin:       Origin,
		directoryURL: DirectoryURL,
	}
}

// ResolveStates maps each lower-cased state name on the directory page to
// the absolute URL of its listing page.
func (s *Scraper) ResolveStates() (map[string]string, error) {
	doc, err := s.document(s.directoryURL)
	if err != nil {
		return nil, err
	}
	return extractStateLinks(doc, s.origin)
}

// StateURL resolves the listing URL for one normalized state name.
func (s *Scraper) StateURL(state string) (string, error) {
	states, err := s.ResolveStates()
	if err != nil {
		return "", err
	}
	u, ok := states[state]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownState, state)
	}
	return u, nil
}

// ListSites returns the detail-page URLs on a state listing page in
// document order.
func (s *Scraper) ListSites(stateURL string) ([]string, error) {
	doc, err := s.document(stateURL)
	if err != nil {
		return nil, err
	}
	return extractSiteLinks(doc, s.origin)
}

// ParseSite fetches a detail page and builds its site record.
func (s *Scraper) ParseSite(detailURL string) (site.Site, error) {
	doc, err := s.document(detailURL)
	if err != nil {
		return site.Site{}, err
	}

	st, err := extractSite(doc)
	if err != nil {
		return site.Site{}, fmt.Errorf("parsing %s: %w", detailURL, err)
	}
	return st, nil
}

// SitesForState lists a state's sites and parses each detail page, keeping
// the listing order. Any failure aborts the whole listing.
func (s *Scraper) SitesForState(stateURL string) ([]site.Site, error) {
	urls, err := s.ListSites(stateURL)
	if err != nil {
		return nil, err
	}

	sites := make([]site.Site, 0, len(urls))
	for _, u := range urls {
		st, err := s.ParseSite(u)
		if err != nil {
			return nil, err
		}
		sites = append(sites, st)
	}
	return sites, nil
}

func (s *Scraper) document(url string) (*goquery.Document, error) {
	body, err := s.getter.Get(url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// extractStateLinks reads the state search dropdown of the directory page.
func extractStateLinks(doc *goquery.Document, origin string) (map[string]string, error) {
	menu := doc.Find("ul.dropdown-menu.SearchBar-keywordSearch").First()
	if menu.Length() == 0 {
		return nil, fmt.Errorf("%w: state search menu not found", ErrStructure)
	}

	states := make(map[string]string)
	var missing error
	menu.Find("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		href, ok := li.Find("a").First().Attr("href")
		if !ok {
			missing = fmt.Errorf("%w: state entry %d has no link", ErrStructure, i+1)
			return false
		}
		name := strings.ToLower(strings.TrimSpace(li.Text()))
		states[name] = origin + href
		return true
	})
	if missing != nil {
		return nil, missing
	}

	return states, nil
}

// extractSiteLinks reads the direct children of the park list. Nested lists
// inside an entry are ignored.
func extractSiteLinks(doc *goquery.Document, origin string) ([]string, error) {
	list := doc.Find("ul#list_parks").First()
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: park list not found", ErrStructure)
	}

	urls := make([]string, 0)
	var missing error
	list.ChildrenFiltered("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		path, ok := li.Find("a").First().Attr("href")
		if !ok {
			missing = fmt.Errorf("%w: park entry %d has no link", ErrStructure, i+1)
			return false
		}
		urls = append(urls, origin+"/"+path+"index.htm")
		return true
	})
	if missing != nil {
		return nil, missing
	}

	return urls, nil
}

// extractSite reads the hero banner and the schema.org address block.
func extractSite(doc *goquery.Document) (site.Site, error) {
	fields := []struct {
		label    string
		selector string
		value    string
	}{
		{label: "title", selector: "a.Hero-title"},
		{label: "locality", selector: `span[itemprop="addressLocality"]`},
		{label: "region", selector: `span[itemprop="addressRegion"]`},
		{label: "postal code", selector: `span[itemprop="postalCode"]`},
		{label: "telephone", selector: `span[itemprop="telephone"]`},
	}

	for i := range fields {
		sel := doc.Find(fields[i].selector).First()
		if sel.Length() == 0 {
			return site.Site{}, fmt.Errorf("%w: %s not found", ErrStructure, fields[i].label)
		}
		fields[i].value = strings.TrimSpace(sel.Text())
	}

	// Some units carry no designation.
	category := strings.TrimSpace(doc.Find("span.Hero-designation").First().Text())

	st, err := site.New(fields[0].value, category, fields[1].value, fields[2].value, fields[3].value, fields[4].value)
	if err != nil {
		return site.Site{}, fmt.Errorf("%w: %v", ErrStructure, err)
	}
	return st, nil
}
