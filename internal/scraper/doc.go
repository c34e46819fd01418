// Package scraper extracts national site data from nps.gov pages.
//
// Scraping runs in three stages. ResolveStates reads the directory page and
// maps each state name to its listing page. ListSites reads a listing page and
// returns the detail-page URLs in document order. ParseSite reads one detail
// page and builds a site.Site. Every page is fetched through a Getter, normally
// the response cache, so repeated runs do not touch the network.
//
// Each page type has one extraction function holding all of its markup
// selectors, so a change to nps.gov markup is fixed in one place.
package scraper
