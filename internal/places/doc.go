// Package places looks up points of interest near a postal code using the
// MapQuest radius search API. Responses go through the response cache, so a
// repeated lookup for the same postal code never reaches the network.
package places
