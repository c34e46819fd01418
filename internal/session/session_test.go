package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/nps-sites/internal/logger"
	"github.com/pfrederiksen/nps-sites/internal/places"
	"github.com/pfrederiksen/nps-sites/internal/scraper"
	"github.com/pfrederiksen/nps-sites/internal/site"
)

const directoryHTML = `<ul class="dropdown-menu SearchBar-keywordSearch">
	<li><a href="/state/mi/index.htm">Michigan</a></li>
	<li><a href="/state/oh/index.htm">Ohio</a></li>
</ul>`

const michiganHTML = `<ul id="list_parks">
	<li><h3><a href="/isro/">Isle Royale</a></h3></li>
	<li><h3><a href="/piro/">Pictured Rocks</a></h3></li>
</ul>`

const detailFmt = `<a class="Hero-title">%s</a><span class="Hero-designation">%s</span>
<span itemprop="addressLocality">%s</span><span itemprop="addressRegion">MI</span>
<span itemprop="postalCode">%s</span><span itemprop="telephone">906-000-0000</span>`

type pageGetter struct {
	pages map[string]string
	calls map[string]int
}

func (g *pageGetter) Get(url string) (string, error) {
	g.calls[url]++
	if body, ok := g.pages[url]; ok {
		return body, nil
	}
	if strings.HasPrefix(url, places.RadiusSearchURL) {
		return `{"searchResults":[{"name":"Cafe X","fields":{"group_sic_code_name":"","address":"1 Main St","city":""}}]}`, nil
	}
	return "", errors.New("not found: " + url)
}

func newPageGetter() *pageGetter {
	return &pageGetter{
		calls: make(map[string]int),
		pages: map[string]string{
			scraper.DirectoryURL:                     directoryHTML,
			"https://www.nps.gov/state/mi/index.htm": michiganHTML,
			"https://www.nps.gov//isro/index.htm":    fmt.Sprintf(detailFmt, "Isle Royale", "National Park", "Houghton", "49931"),
			"https://www.nps.gov//piro/index.htm":    fmt.Sprintf(detailFmt, "Pictured Rocks", "National Lakeshore", "Munising", "49862"),
		},
	}
}

func runSession(t *testing.T, getter *pageGetter, input string) string {
	t.Helper()
	var out bytes.Buffer
	s := New(scraper.New(getter), places.NewClient("key", getter), strings.NewReader(input), &out)
	require.NoError(t, s.Run())
	require.Equal(t, Exit, s.State())
	return out.String()
}

func TestRun_EndToEnd(t *testing.T) {
	out := runSession(t, newPageGetter(), "michigan\n1\nexit\n")

	require.Contains(t, out, "List of national sites in michigan")
	require.Contains(t, out, "[1] Isle Royale (National Park): Houghton, MI 49931")
	require.Contains(t, out, "[2] Pictured Rocks (National Lakeshore): Munising, MI 49862")
	require.Contains(t, out, "Places near Isle Royale")
	require.Contains(t, out, "- Cafe X (no category): 1 Main St, no city")
	require.True(t, strings.HasSuffix(out, Farewell+"\n"))
}

func TestRun_StateNameIsCaseInsensitive(t *testing.T) {
	getter := newPageGetter()
	upper := runSession(t, getter, "Michigan\nexit\n")
	lower := runSession(t, getter, "michigan\nexit\n")

	require.Contains(t, upper, "[1] Isle Royale")
	require.Contains(t, lower, "[1] Isle Royale")
	require.Equal(t, 2, getter.calls["https://www.nps.gov/state/mi/index.htm"])
}

func TestRun_UnknownStateReprompts(t *testing.T) {
	getter := newPageGetter()
	out := runSession(t, getter, "Narnia\nexit\n")

	require.Contains(t, out, "[Error] Enter proper state name")
	require.Equal(t, 2, strings.Count(out, StatePrompt))
	require.Empty(t, getter.calls, "rejected input must not fetch anything")
}

func TestRun_EOFExits(t *testing.T) {
	out := runSession(t, newPageGetter(), "michigan\n")
	require.True(t, strings.HasSuffix(out, Farewell+"\n"))
}

func TestRun_LoadFailureReturnsToStatePrompt(t *testing.T) {
	getter := newPageGetter()
	out := runSession(t, getter, "ohio\nmichigan\nexit\n")

	require.Contains(t, out, "[Error] Could not load sites for ohio")
	require.Contains(t, out, "[1] Isle Royale")
}

func TestRun_LogsLoadedSiteRecords(t *testing.T) {
	var logs bytes.Buffer
	logger.SetDefault(logger.New(logger.LevelDebug, &logs))
	defer logger.SetDefault(logger.New(logger.LevelWarn, os.Stderr))

	runSession(t, newPageGetter(), "michigan\nexit\n")

	require.Contains(t, logs.String(), `"category":"National Lakeshore"`)
	require.Contains(t, logs.String(), `"address":"Munising, MI"`)
}

func TestRun_PlacesErrorPayloadIsReported(t *testing.T) {
	getter := newPageGetter()
	getter.pages[places.NewClient("key", getter).QueryURL("49931")] = `{"info":{"statuscode":403}}`

	out := runSession(t, getter, "michigan\n1\nexit\n")

	require.Contains(t, out, "[Error] Could not find places near Isle Royale")
	require.NotContains(t, out, "Places near Isle Royale")
}

func TestRun_NearbyFailureStaysInList(t *testing.T) {
	s := New(&stubSites{sites: makeSites(t, 2)}, &stubFinder{err: errors.New("quota exceeded")}, strings.NewReader(""), &bytes.Buffer{})

	s.Handle("michigan")
	s.Handle("1")

	require.Equal(t, ShowingSiteList, s.State())
	require.Len(t, s.Sites(), 2)
}

type stubSites struct {
	sites     []site.Site
	listCalls int
}

func (s *stubSites) StateURL(state string) (string, error) {
	return "https://www.nps.gov/state/" + state, nil
}

func (s *stubSites) SitesForState(string) ([]site.Site, error) {
	s.listCalls++
	return s.sites, nil
}

type stubFinder struct {
	postalCodes []string
	err         error
}

func (f *stubFinder) FindNearby(postalCode string) ([]places.Place, error) {
	f.postalCodes = append(f.postalCodes, postalCode)
	return nil, f.err
}

func makeSites(t *testing.T, n int) []site.Site {
	t.Helper()
	sites := make([]site.Site, 0, n)
	for i := 1; i <= n; i++ {
		st, err := site.New(fmt.Sprintf("Site %d", i), "National Park", "Town", "MI", fmt.Sprintf("4990%d", i), "555-0100")
		require.NoError(t, err)
		sites = append(sites, st)
	}
	return sites
}

func TestHandle_Navigation(t *testing.T) {
	sites := &stubSites{sites: makeSites(t, 5)}
	finder := &stubFinder{}
	var out bytes.Buffer
	s := New(sites, finder, strings.NewReader(""), &out)

	s.Handle("michigan")
	require.Equal(t, ShowingSiteList, s.State())
	require.Equal(t, 1, sites.listCalls)

	s.Handle("6")
	require.Equal(t, ShowingSiteList, s.State())
	require.Contains(t, out.String(), "[Error] Invalid input")
	require.Empty(t, finder.postalCodes)

	s.Handle("5")
	require.Equal(t, []string{"49905"}, finder.postalCodes)
	require.Equal(t, ShowingSiteList, s.State())

	s.Handle("back")
	require.Equal(t, AwaitingState, s.State())
	require.Empty(t, s.Sites())

	s.Handle("michigan")
	require.Equal(t, 2, sites.listCalls, "re-entering a state must list it again")
}

func TestHandle_SelectionUsesCurrentList(t *testing.T) {
	sites := &stubSites{sites: makeSites(t, 5)}
	finder := &stubFinder{}
	s := New(sites, finder, strings.NewReader(""), &bytes.Buffer{})

	s.Handle("michigan")
	s.Handle("back")

	sites.sites = makeSites(t, 2)
	s.Handle("ohio")

	s.Handle("4")
	require.Empty(t, finder.postalCodes, "index valid only for the previous list must be rejected")

	s.Handle("2")
	require.Equal(t, []string{"49902"}, finder.postalCodes)
}
