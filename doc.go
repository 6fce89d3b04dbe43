// Package aitrader is a terminal client for the aitradex trading service.
//
// It covers the stock-quote review workflow (quote, history, persisted
// searches with review notes), browsing the search history, and linking
// E*TRADE brokerage accounts through the service's OAuth flow. The `atx`
// command in atx/ is the front end; this package holds the domain types,
// the REST client with its short-lived quote cache, and the workflow
// controllers the commands drive.
package aitrader
