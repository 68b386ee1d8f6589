package reasoner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog/log"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
	"github.com/greenmark-ai/greenmark/pkg/openrouter"
)

// DefaultMaxIterations bounds the tool-calling loop per reasoning run.
const DefaultMaxIterations = 5

// Service binds the reasoning capability to an OpenAI-compatible chat
// completion endpoint with function calling. Tool calls requested by the
// model are executed through the gateway and fed back until the model
// produces a final text answer or the iteration budget runs out.
type Service struct {
	client        *openaisdk.Client
	gateway       contractx.ToolGateway
	model         string
	maxTokens     int64
	temperature   float64
	maxIterations int
}

// Option customizes a Service.
type Option func(*Service)

func WithMaxIterations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

func New(client *openaisdk.Client, cfg openrouter.Config, gateway contractx.ToolGateway, opts ...Option) *Service {
	s := &Service{
		client:        client,
		gateway:       gateway,
		model:         cfg.Model,
		maxTokens:     cfg.MaxCompletionToken,
		temperature:   cfg.Temperature,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Respond(ctx context.Context, req contractx.ReasonerRequest) (contractx.ReasonerResponse, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:    shared.ChatModel(s.model),
		Messages: buildMessages(req),
		Tools:    buildTools(req.Tools),
	}
	if s.maxTokens > 0 {
		params.MaxTokens = openaisdk.Int(s.maxTokens)
	}
	if s.temperature > 0 {
		params.Temperature = openaisdk.Float(s.temperature)
	}

	var trace []contractx.ToolInvocation

	for iteration := 0; iteration < s.maxIterations; iteration++ {
		completion, err := s.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return contractx.ReasonerResponse{}, fmt.Errorf("%w: chat completion: %v", contractx.ErrReasonerInvoke, err)
		}
		if len(completion.Choices) == 0 {
			return contractx.ReasonerResponse{}, fmt.Errorf("%w: completion has no choices", contractx.ErrSchemaViolation)
		}

		message := completion.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			text := strings.TrimSpace(message.Content)
			if text == "" {
				return contractx.ReasonerResponse{}, fmt.Errorf("%w: completion text is empty", contractx.ErrSchemaViolation)
			}
			return contractx.ReasonerResponse{Text: text, Trace: trace}, nil
		}

		params.Messages = append(params.Messages, message.ToParam())
		for _, call := range message.ToolCalls {
			input := extractInput(call.Function.Arguments)
			result := s.gateway.Execute(ctx, call.Function.Name, input)

			trace = append(trace, contractx.ToolInvocation{
				Tool:   call.Function.Name,
				Input:  input,
				Output: result.Output,
			})
			log.Debug().
				Str("tool", call.Function.Name).
				Int("iteration", iteration).
				Msg("tool invoked")

			params.Messages = append(params.Messages, openaisdk.ToolMessage(result.Output, call.ID))
		}
	}

	return contractx.ReasonerResponse{}, fmt.Errorf("%w: no final answer after %d iterations", contractx.ErrReasonerInvoke, s.maxIterations)
}

func buildMessages(req contractx.ReasonerRequest) []openaisdk.ChatCompletionMessageParamUnion {
	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if strings.TrimSpace(req.Prompt) != "" {
		messages = append(messages, openaisdk.SystemMessage(req.Prompt))
	}
	for _, turn := range req.History {
		switch turn.Role {
		case contractx.RoleAgent:
			messages = append(messages, openaisdk.AssistantMessage(turn.Text))
		default:
			messages = append(messages, openaisdk.UserMessage(turn.Text))
		}
	}
	return messages
}

func buildTools(infos []contractx.ToolInfo) []openaisdk.ChatCompletionToolParam {
	if len(infos) == 0 {
		return nil
	}

	tools := make([]openaisdk.ChatCompletionToolParam, 0, len(infos))
	for _, info := range infos {
		properties := make(map[string]any, len(info.Params))
		required := make([]string, 0, len(info.Params))
		for name, param := range info.Params {
			properties[name] = map[string]any{
				"type":        param.Type,
				"description": param.Desc,
			}
			if param.Required {
				required = append(required, name)
			}
		}

		tools = append(tools, openaisdk.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        info.Name,
				Description: openaisdk.String(info.Desc),
				Parameters: shared.FunctionParameters{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}
	return tools
}

// extractInput pulls the "input" argument out of the model's JSON arguments.
// Unparseable arguments are forwarded verbatim so the tool can report them.
func extractInput(arguments string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return arguments
	}
	if input, ok := args["input"].(string); ok {
		return input
	}
	return arguments
}
