// Package renderer turns the client's domain structs into markdown
// reports. Each report is a main template plus named partials, all
// embedded next to this file.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderQuote renders a quote report: the price block, the recent
// history table and the review state.
func RenderQuote(q *QuoteReport) string {
	partials := map[string]string{
		"quote_title":   "quote_title.md",
		"quote_price":   "quote_price.md",
		"quote_history": "quote_history.md",
		"quote_review":  "quote_review.md",
	}
	return renderTemplate("quote", "quote.md", partials, q)
}

// RenderSearches renders one page of the search history.
func RenderSearches(l *SearchListing) string {
	partials := map[string]string{
		"searches_title": "searches_title.md",
		"searches_rows":  "searches_rows.md",
		"searches_pager": "searches_pager.md",
	}
	return renderTemplate("searches", "searches.md", partials, l)
}

// RenderAccounts renders the linked-account listing with its
// connection banner.
func RenderAccounts(l *AccountListing) string {
	partials := map[string]string{
		"accounts_banner": "accounts_banner.md",
		"accounts_rows":   "accounts_rows.md",
	}
	return renderTemplate("accounts", "accounts.md", partials, l)
}

// RenderBalance renders the cash position of one account.
func RenderBalance(b *BalanceReport) string {
	return renderTemplate("balance", "balance.md", nil, b)
}

// RenderPortfolio renders the positions of one account.
func RenderPortfolio(p *PortfolioReport) string {
	return renderTemplate("portfolio", "portfolio.md", nil, p)
}

// RenderOrders renders the order listing of one account.
func RenderOrders(o *OrderListing) string {
	return renderTemplate("orders", "orders.md", nil, o)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
