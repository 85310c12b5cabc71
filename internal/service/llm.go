package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/utkutarhan/zest-backend/internal/types"
)

const suggestionsSystemPrompt = `You are "Zest", an energetic recipe discovery assistant.
Your job: given the ingredients the user has on hand, find the 6-8 MOST POPULAR Turkish dishes they can make and point them at trustworthy sources.

SCENARIO RULES:
- "bar": suggest ONLY cocktails or drinks.
- "kitchen": suggest ONLY food.
- "fit": suggest low-calorie, healthy options.
- "full": suggest a complete menu (main dish + drink).

DIETARY PREFERENCES (if present, follow strictly):
- "vegetarian": never use meat or fish.
- "gluten_free": no flour, bread, pasta and similar.
- "alcohol_free": never use alcohol.

OUTPUT FORMAT (JSON):
Return a JSON object with this structure:
{
  "recipes": [
    {
      "dishName": "Dish name (e.g. Karniyarik)",
      "sourceName": "Source site name (e.g. Nefis Yemek Tarifleri, Yemek.com, Lezzet.com.tr)",
      "sourceUrl": "Google search link (format: https://www.google.com/search?q=site:sourcesite.com+Dish+Name)",
      "imageUrl": "The BEST English search phrase to visualize the dish (e.g. 'Cuba Libre cocktail', 'Menemen dish'). Use a specific phrase, not a single word.",
      "missingIngredients": ["Missing 1", "Missing 2"],
      "missingCount": 2
    }
  ],
  "chefTip": "A warm, personal tip for the user about their ingredient combination."
}

IMPORTANT RULES:
1. NEVER write the recipe itself. Only point to sources.
2. Compute "missingIngredients" against the user's list. Do not count pantry staples like salt, pepper, oil or water as missing.
3. Suggest at least 6 and at most 9 dishes.
4. Prefer Turkish recipe sites as sources (Nefis Yemek Tarifleri, Yemek.com, Lezzet, Mynet Yemek and similar).
5. Answer dish names and tips in the requested language.`

const detailSystemPrompt = `You are "Zest", an expert chef.
Your job: produce a detailed, step-by-step recipe for the given dish name.

OUTPUT FORMAT (JSON):
{
  "prepTime": 30,
  "cookTime": 45,
  "servings": 4,
  "difficulty": "medium",
  "calories": 350,
  "sourceUrl": "A REAL recipe link if you know one, otherwise a Google search link",
  "ingredients": [
    { "name": "Egg", "amount": "2", "unit": "pieces" }
  ],
  "steps": [
    { "order": 1, "instruction": "Crack the eggs into a bowl.", "tip": "Room temperature eggs work best." }
  ]
}

RULES:
1. Amounts must be concrete.
2. Steps must be clear and ordered.
3. Set difficulty ("easy", "medium", "hard") from the complexity of the dish.
4. The "ingredients" and "steps" arrays must NEVER be empty.
5. If you do not know the dish, make the closest reasonable guess, but NEVER return empty arrays.
6. Answer ingredient names and instructions in the requested language.`

// chatMessage is one message in a chat-completions conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for an OpenAI-compatible completions API.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

// LLMService wraps the external generation provider behind the two fixed
// prompt templates. Every call is single-attempt: no retry, no backoff, a
// provider outage surfaces directly to the caller.
type LLMService struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
	cache      DetailCache
	logger     *zap.Logger
}

// NewLLMService creates the gateway. A missing credential is not fatal here;
// it surfaces as ErrProviderUnavailable on the first call so the rest of the
// API keeps serving.
func NewLLMService(apiKey, apiURL, model string, cache DetailCache, logger *zap.Logger) *LLMService {
	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache:  cache,
		logger: logger,
	}
}

// GenerateSuggestions asks the provider for dish suggestions and returns them
// deterministically ordered: ascending missing-ingredient count, ties broken
// by a locale-aware dish name comparison.
func (s *LLMService) GenerateSuggestions(ctx context.Context, scenario string, ingredients, dietaryPreferences []string, lang string) (*types.SuggestionsResponse, error) {
	if s.apiKey == "" {
		return nil, ErrProviderUnavailable
	}

	userPrompt := fmt.Sprintf(
		"Language: %s\nScenario: %s\nIngredients: %s\nDietary Preferences: %s",
		lang, scenario, strings.Join(ingredients, ", "), strings.Join(dietaryPreferences, ", "),
	)

	content, err := s.complete(ctx, suggestionsSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var result types.SuggestionsResponse
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		s.logger.Error("failed to parse suggestions response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	for i := range result.Recipes {
		result.Recipes[i].Scenario = scenario
	}
	SortSuggestions(result.Recipes, lang)

	return &result, nil
}

// GenerateDetail returns the full recipe for a dish, serving repeat lookups
// from the cache. Parse failures are never cached.
func (s *LLMService) GenerateDetail(ctx context.Context, dishName, lang string) (*types.RecipeDetail, error) {
	if detail, ok := s.cache.Get(ctx, dishName, lang); ok {
		s.logger.Info("serving recipe detail from cache", zap.String("dish", dishName))
		return detail, nil
	}

	if s.apiKey == "" {
		return nil, ErrProviderUnavailable
	}

	userPrompt := fmt.Sprintf(
		"Language: %s\nDish Name: %s\nProvide detailed recipe steps and ingredients.\nEnsure valid JSON output.\nTry to provide a real URL for the recipe if possible.",
		lang, dishName,
	)

	content, err := s.complete(ctx, detailSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var detail types.RecipeDetail
	if err := json.Unmarshal([]byte(content), &detail); err != nil {
		s.logger.Error("failed to parse detail response",
			zap.String("dish", dishName), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidProviderResponse, err)
	}

	s.cache.Set(ctx, dishName, lang, &detail)
	return &detail, nil
}

// complete performs one chat-completions round trip and returns the message
// content of the first choice.
func (s *LLMService) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("provider request failed",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return "", fmt.Errorf("%w: provider returned status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no content generated", ErrGenerationFailed)
	}

	return result.Choices[0].Message.Content, nil
}

// SortSuggestions orders suggestions by ascending missing count, then by
// dish name under the collation rules of the request language. Dishes the
// user can cook right now always surface first.
func SortSuggestions(recipes []types.RecipeSuggestion, lang string) {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Turkish
	}
	col := collate.New(tag)

	sort.SliceStable(recipes, func(i, j int) bool {
		if recipes[i].MissingCount != recipes[j].MissingCount {
			return recipes[i].MissingCount < recipes[j].MissingCount
		}
		return col.CompareString(recipes[i].DishName, recipes[j].DishName) < 0
	})
}
