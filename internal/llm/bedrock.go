package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// BedrockBackend invokes Anthropic Claude through AWS Bedrock. The underlying
// AWS client is created lazily on first use and reused for the lifetime of
// the process.
type BedrockBackend struct {
	region  string
	modelID string

	initOnce sync.Once
	initErr  error
	client   *bedrockruntime.Client
}

// NewBedrockBackend creates a Bedrock backend. Credentials come from the
// default AWS credential chain (environment, profile, IAM role).
func NewBedrockBackend(region, modelID string) *BedrockBackend {
	if region == "" {
		region = "us-east-1"
	}
	if modelID == "" {
		modelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	return &BedrockBackend{region: region, modelID: modelID}
}

func (b *BedrockBackend) Name() string { return "bedrock" }

func (b *BedrockBackend) ensureClient(ctx context.Context) (*bedrockruntime.Client, error) {
	b.initOnce.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(b.region))
		if err != nil {
			b.initErr = fmt.Errorf("failed to load AWS config: %w", err)
			return
		}
		b.client = bedrockruntime.NewFromConfig(cfg)
	})
	return b.client, b.initErr
}

type bedrockClaudeRequest struct {
	AnthropicVersion string        `json:"anthropic_version"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	Messages         []chatMessage `json:"messages"`
}

type bedrockClaudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate invokes the configured Claude model with a single user message.
func (b *BedrockBackend) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	client, err := b.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(bedrockClaudeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        1000,
		Temperature:      temperature,
		Messages:         []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal bedrock request: %w", err)
	}

	contentType := "application/json"
	out, err := client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &b.modelID,
		ContentType: &contentType,
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke failed: %w", err)
	}

	var parsed bedrockClaudeResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse bedrock response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("bedrock returned no content blocks")
	}
	return parsed.Content[0].Text, nil
}
