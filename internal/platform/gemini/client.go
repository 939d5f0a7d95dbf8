package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"recipehub/internal/chef"
	"recipehub/internal/recipe"
)

// ErrEmptyResponse is returned when Gemini answers without any text.
var ErrEmptyResponse = errors.New("empty response from Gemini")

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-1.5-flash"

// Client is a client for the Gemini API.
type Client struct {
	client    *genai.Client
	chat      *genai.GenerativeModel
	moderator *genai.GenerativeModel
	generator *genai.GenerativeModel
	logger    *zap.Logger
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	chat := client.GenerativeModel(model)
	chat.SetTemperature(0.7)
	chat.SetTopP(0.9)

	moderator := client.GenerativeModel(model)
	moderator.SetTemperature(0)

	generator := client.GenerativeModel(model)
	generator.ResponseMIMEType = "application/json"
	generator.ResponseSchema = recipeSchema

	return &Client{
		client:    client,
		chat:      chat,
		moderator: moderator,
		generator: generator,
		logger:    logger,
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

var recipeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString},
		"origin":      {Type: genai.TypeString},
		"description": {Type: genai.TypeString},
		"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"steps":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"prep_time":   {Type: genai.TypeString},
		"servings":    {Type: genai.TypeInteger},
		"calories":    {Type: genai.TypeInteger},
		"tags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title", "ingredients", "steps"},
}

// GenerateImageHash calculates the SHA256 hash of the image data.
func GenerateImageHash(imageData []byte) string {
	hash := sha256.Sum256(imageData)
	return hex.EncodeToString(hash[:])
}

// AskChef answers a question about a recipe.
func (c *Client) AskChef(ctx context.Context, recipeContext, question string) (string, error) {
	text, err := c.generateText(ctx, c.chat, chef.QuestionPrompt(recipeContext, question))
	if err != nil && !errors.Is(err, ErrEmptyResponse) {
		return "", err
	}
	return chef.Answer(text), nil
}

// ModerateMessage reports whether a chat message should be flagged.
func (c *Client) ModerateMessage(ctx context.Context, message string) (bool, error) {
	text, err := c.generateText(ctx, c.moderator, chef.ModerationPrompt(message))
	if err != nil && !errors.Is(err, ErrEmptyResponse) {
		return false, err
	}
	flagged := chef.IsFlagged(text)
	c.logger.Debug("moderated chat message", zap.Bool("flagged", flagged))
	return flagged, nil
}

// GenerateRecipe asks Gemini for a new recipe.
func (c *Client) GenerateRecipe(ctx context.Context) (*recipe.Recipe, error) {
	text, err := c.generateText(ctx, c.generator, chef.RecipePrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	cleanJSON, err := chef.ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var r recipe.Recipe
	if err := json.Unmarshal([]byte(cleanJSON), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w. Raw response: %s", err, cleanJSON)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("generated recipe rejected: %w", err)
	}
	r.Slug = recipe.Slugify(r.Title)

	c.logger.Info("generated recipe", zap.String("slug", r.Slug), zap.Int("ingredients", len(r.Ingredients)))
	return &r, nil
}

func (c *Client) generateText(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
