// Package gemini implements module extraction with the Google Gemini API.
// Each processed page is sent through one structured-output generation call;
// the per-page results fold into a single module catalog.
package gemini

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/modex/modex"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You are an assistant specialized in analyzing software documentation and extracting structured information.

You will be given the content of one documentation page. Your task is to:
1. Identify the main modules or features described in the documentation
2. For each module, identify submodules or sub-features
3. Generate detailed descriptions for each module and submodule based ONLY on the content provided

Only include modules and submodules that are clearly described in the documentation.
Be specific and factual in your descriptions, using only information from the provided content.`

// Ensure Extractor implements modex.ModuleExtractor at compile time.
var _ modex.ModuleExtractor = (*Extractor)(nil)

// Extractor extracts a module catalog from processed documentation pages.
type Extractor struct {
	client *genai.Client
	model  string
	logger *slog.Logger

	// Optional token budgeting: pages are truncated from the tail of their
	// outline until the prompt fits maxInputTokens.
	tokens         modex.TokenCounter
	maxInputTokens int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(e *Extractor) {
		if model != "" {
			e.model = model
		}
	}
}

// WithTokenBudget enables prompt truncation: pages whose prompt exceeds
// maxInputTokens lose trailing outline entries until they fit.
func WithTokenBudget(tc modex.TokenCounter, maxInputTokens int) Option {
	return func(e *Extractor) {
		e.tokens = tc
		e.maxInputTokens = maxInputTokens
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor using the given Gemini client.
func NewExtractor(client *genai.Client, opts ...Option) *Extractor {
	e := &Extractor{
		client: client,
		model:  DefaultModel,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractModules runs one generation call per page in sorted-URL order and
// folds the responses into a catalog. A page whose call or parse fails is
// logged and skipped; later pages win naming conflicts.
func (e *Extractor) ExtractModules(ctx context.Context, content modex.ProcessedContent) (modex.Catalog, error) {
	urls := make([]string, 0, len(content))
	for url := range content {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	var modules []modex.ExtractedModule
	for _, url := range urls {
		page := content[url]
		if page == nil {
			continue
		}

		prompt, ok := e.buildBudgetedPrompt(ctx, page)
		if !ok {
			e.logger.Warn("page exceeds token budget, skipping", "url", url)
			continue
		}

		response, err := e.generate(ctx, prompt)
		if err != nil {
			e.logger.Warn("module extraction failed for page", "url", url, "error", err)
			continue
		}

		modules = append(modules, response.Modules...)
	}

	return modex.BuildCatalog(modules), nil
}

// buildBudgetedPrompt formats the page prompt, dropping trailing outline
// entries while the prompt exceeds the token budget. The bool result is false
// when even the bare page header does not fit.
func (e *Extractor) buildBudgetedPrompt(ctx context.Context, page *modex.ProcessedPage) (string, bool) {
	prompt := BuildPrompt(page)
	if e.tokens == nil || e.maxInputTokens <= 0 {
		return prompt, true
	}

	trimmed := *page
	for {
		count, err := e.tokens.CountTokens(ctx, prompt)
		if err != nil {
			// Budgeting is best effort; send the prompt as is.
			e.logger.Warn("token counting failed", "url", page.URL, "error", err)
			return prompt, true
		}
		if count <= e.maxInputTokens {
			return prompt, true
		}
		if len(trimmed.Structure) == 0 {
			return "", false
		}
		trimmed.Structure = trimmed.Structure[:len(trimmed.Structure)-1]
		prompt = BuildPrompt(&trimmed)
	}
}

// generate performs one structured-output call and parses the response.
func (e *Extractor) generate(ctx context.Context, prompt string) (*modex.ModuleResponse, error) {
	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, modex.Errorf(modex.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// BuildPrompt renders a processed page as the generation prompt.
func BuildPrompt(page *modex.ProcessedPage) string {
	var sb strings.Builder
	sb.WriteString("Documentation content:\n\n")
	sb.WriteString(modex.FormatPage(page))
	return sb.String()
}

// BuildConfig returns the GenerateContentConfig for module extraction:
// deterministic output constrained to the module catalog schema.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}
}

// responseSchema constrains the model to modules[]{module, description,
// submodules[]{submodule, description}}.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"modules": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"module":      {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"submodules": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"submodule":   {Type: genai.TypeString},
									"description": {Type: genai.TypeString},
								},
								Required: []string{"submodule", "description"},
							},
						},
					},
					Required: []string{"module", "description"},
				},
			},
		},
		Required: []string{"modules"},
	}
}

// ParseResponse decodes a generation response, tolerating markdown code
// fences around the JSON body.
func ParseResponse(text string) (*modex.ModuleResponse, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var response modex.ModuleResponse
	if err := json.Unmarshal([]byte(text), &response); err != nil {
		return nil, modex.Errorf(modex.EINVALID, "invalid module response: %v", err)
	}
	return &response, nil
}
