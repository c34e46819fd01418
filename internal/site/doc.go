// Package site defines the national site record scraped from nps.gov and the
// closed set of state names the directory page is expected to list.
package site
