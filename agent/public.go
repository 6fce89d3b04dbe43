package agent

import (
	"context"
	"fmt"

	"github.com/xmyqyl4x/aitrader"
	"github.com/xmyqyl4x/aitrader/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about each expert's skill from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to research stock quotes and to review
			his past searches. Assume he talks about symbols he has already
			searched; check the search history first to understand what they are.

			Devise a plan of questions to each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarketWatcher returns the expert for market news and context. It
// grounds its answers with Google Search.
func NewMarketWatcher() *Expert {
	return &Expert{
		Name: "MarketWatcher",
		Description: `This is an expert market watcher,
		very well aware of financial products, companies and exchanges,
		and of the latest news about them.
		Ask the MarketWatcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in markets. You can search and find anything related to
			companies, exchanges, funds and financial news. You leverage Google Search
			to ground your assertions, and you know how to relate the latest news to
			the user's request.
				`}}},
		},
	}
}

// NewReviewer returns the expert over the user's quote searches. It can
// fetch live quotes and read the persisted search history through the
// service client.
func NewReviewer(client *aitrader.Client) *Expert {
	lib := []Function{quoteFunc(client), recentSearchesFunc(client), searchDetailFunc(client)}

	return &Expert{
		Name: "Reviewer",
		Description: `This is the Reviewer. He has access to the user's quote searches:
		he can fetch a live quote for any symbol, list the persisted search history,
		and read one search in full, including its review verdict and note.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are in charge of the user's quote searches.
				You know how to use the Tools to fetch live quotes and to read the
				persisted search history, including reviews. You are part of a team
				of experts; yours is everything about the user's own searches.
				Pardon their approximative language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func quoteFunc(client *aitrader.Client) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Quote",
			Description: `Quote fetches the latest quote for a stock symbol: open, high, low, close, volume and change.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The stock symbol, 1 to 10 letters, e.g. AAPL.",
					},
				},
				Required: []string{"symbol"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted price block for the symbol.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			symbol, ok := args["symbol"].(string)
			if !ok {
				return errResponse(id, "Quote", fmt.Errorf("argument 'symbol' is not a string but %T", args["symbol"]))
			}
			if err := aitrader.ValidateSymbol(symbol); err != nil {
				return errResponse(id, "Quote", err)
			}
			quote, err := client.Quote(symbol, "")
			if err != nil {
				return errResponse(id, "Quote", err)
			}
			report := renderer.NewQuoteReport(aitrader.ReviewResult{
				Symbol: quote.Symbol,
				Range:  aitrader.Range1D,
				Quote:  &quote,
			})
			return okResponse(id, "Quote", renderer.RenderQuote(report))
		},
	}
}

func recentSearchesFunc(client *aitrader.Client) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "RecentSearches",
			Description: `RecentSearches lists the user's persisted quote searches, newest first.
			It shows the search id, symbol, range, outcome, price and review status.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "Optional symbol to narrow the listing.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the most recent searches.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			query := aitrader.ListQuery{Size: 20}
			if symbol, ok := args["symbol"].(string); ok {
				query.Symbol = symbol
			}
			page, err := client.ListSearches(query)
			if err != nil {
				return errResponse(id, "RecentSearches", err)
			}
			listing := renderer.NewSearchListing(page.Content, page.Number, page.TotalPages, page.TotalElements, query.Symbol != "")
			return okResponse(id, "RecentSearches", renderer.RenderSearches(listing))
		},
	}
}

func searchDetailFunc(client *aitrader.Client) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "SearchDetail",
			Description: `SearchDetail reads one persisted search in full by its id,
			including the review verdict and note.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id": {
						Type:        genai.TypeString,
						Description: "The search id, as listed by RecentSearches.",
					},
				},
				Required: []string{"id"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted view of the search, with its review.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			searchID, ok := args["id"].(string)
			if !ok {
				return errResponse(id, "SearchDetail", fmt.Errorf("argument 'id' is not a string but %T", args["id"]))
			}
			rec, err := client.GetSearch(searchID)
			if err != nil {
				return errResponse(id, "SearchDetail", err)
			}
			listing := renderer.NewSearchListing([]aitrader.SearchRecord{rec}, 0, 1, 1, false)
			out := renderer.RenderSearches(listing)
			if rec.ReviewNote != nil {
				out += fmt.Sprintf("\nReview note: %s\n", *rec.ReviewNote)
			}
			return okResponse(id, "SearchDetail", out)
		},
	}
}
