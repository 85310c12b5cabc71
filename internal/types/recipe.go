package types

// RecipeSuggestion is one provider-suggested dish. The provider computes the
// missing-ingredient list against the user's pantry; missingCount is trusted
// as supplied rather than recomputed.
type RecipeSuggestion struct {
	DishName           string   `json:"dishName"`
	SourceName         string   `json:"sourceName"`
	SourceURL          string   `json:"sourceUrl"`
	ImageURL           string   `json:"imageUrl"`
	MissingIngredients []string `json:"missingIngredients"`
	MissingCount       int      `json:"missingCount"`
	Scenario           string   `json:"scenario,omitempty"`
}

// SuggestionsResponse is the parsed payload of a suggestion-generation call.
type SuggestionsResponse struct {
	Recipes []RecipeSuggestion `json:"recipes"`
	ChefTip string             `json:"chefTip"`
}

// DetailIngredient is one line of a full recipe's ingredient list.
type DetailIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// RecipeStep is one ordered instruction of a full recipe.
type RecipeStep struct {
	Order       int    `json:"order"`
	Instruction string `json:"instruction"`
	Tip         string `json:"tip,omitempty"`
}

// RecipeDetail is a full generated recipe for a single dish.
type RecipeDetail struct {
	PrepTime    int                `json:"prepTime"`
	CookTime    int                `json:"cookTime"`
	Servings    int                `json:"servings"`
	Difficulty  string             `json:"difficulty"`
	Calories    int                `json:"calories"`
	SourceURL   string             `json:"sourceUrl"`
	Ingredients []DetailIngredient `json:"ingredients"`
	Steps       []RecipeStep       `json:"steps"`
}

// GenerateRequest is the body of POST /api/recipes/generate.
type GenerateRequest struct {
	Scenario           string   `json:"scenario"`
	Ingredients        []string `json:"ingredients"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	Language           string   `json:"language"`
}

// DetailRequest is the body of POST /api/recipes/detail.
type DetailRequest struct {
	DishName string `json:"dishName"`
	Language string `json:"language"`
}
