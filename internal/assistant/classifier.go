package assistant

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v3"
)

// NotFoundSentinel is the literal value the model is told to return when the
// message does not refer to any known item.
const NotFoundSentinel = "not_found"

// TransportError wraps a failed completion call (network, auth, rate limit).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("classifier request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IntentSpec is the prompt spec loaded from prompts/intent.yaml.
type IntentSpec struct {
	System string `yaml:"system"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

func defaultIntentSpec() IntentSpec {
	var spec IntentSpec
	spec.System = "You are a helpful assistant for commerce queries."
	spec.Style.Temperature = 0.1
	spec.Style.MaxTokens = 50
	return spec
}

// ItemClassifier maps a free-text message onto a known item name with a
// single chat completion per call. No retry, no streaming.
type ItemClassifier struct {
	spec   IntentSpec
	client *openai.Client
	model  string
}

// LoadItemClassifier reads the prompt spec and wires the completion client.
// A missing or unreadable spec file falls back to built-in defaults; the
// classifier must never be the reason the process fails to start.
func LoadItemClassifier(path string, client *openai.Client, model string) *ItemClassifier {
	spec := defaultIntentSpec()
	if b, err := os.ReadFile(path); err != nil {
		log.Printf("[classifier] intent spec %s unreadable, using defaults: %v", path, err)
	} else if err := yaml.Unmarshal(b, &spec); err != nil {
		log.Printf("[classifier] intent spec %s invalid, using defaults: %v", path, err)
		spec = defaultIntentSpec()
	}
	if spec.Style.Temperature <= 0 {
		spec.Style.Temperature = 0.1
	}
	if spec.Style.MaxTokens <= 0 {
		spec.Style.MaxTokens = 50
	}
	return &ItemClassifier{spec: spec, client: client, model: model}
}

// Classify asks the model to pick one of knownNames for the message, or the
// not-found sentinel. The answer is returned trimmed and lowercased.
func (c *ItemClassifier) Classify(ctx context.Context, message string, knownNames []string) (string, error) {
	prompt := fmt.Sprintf(
		"The user asked: '%s'. Available items: [%s]. "+
			"If the question is about an item, return its name exactly as listed; else return '%s'.",
		message, strings.Join(knownNames, ", "), strings.ToUpper(NotFoundSentinel))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.spec.Style.Temperature,
		MaxTokens:   c.spec.Style.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.spec.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &TransportError{Err: fmt.Errorf("no choices in completion response")}
	}
	return strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content)), nil
}
