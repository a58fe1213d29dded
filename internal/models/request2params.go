package models

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go/v3"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// buildParams converts an ADK request into OpenAI chat-completion parameters.
func buildParams(req *model.LLMRequest, fallbackModel string) *openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: req.Model,
	}
	if req.Model == "" {
		params.Model = fallbackModel
	}

	messages := convertContentsToMessages(req.Contents)
	if len(messages) > 0 {
		params.Messages = messages
	}

	if req.Config != nil {
		if req.Config.Temperature != nil {
			params.Temperature = openai.Float(float64(*req.Config.Temperature))
		}
		if req.Config.MaxOutputTokens > 0 {
			params.MaxTokens = openai.Int(int64(req.Config.MaxOutputTokens))
		}
		if req.Config.TopP != nil {
			params.TopP = openai.Float(float64(*req.Config.TopP))
		}
		if format := convertResponseFormat(req.Config); format != nil {
			params.ResponseFormat = *format
		}
	}

	return &params
}

// convertResponseFormat maps a JSON response schema from the request config
// onto the OpenAI structured-output format.
func convertResponseFormat(cfg *genai.GenerateContentConfig) *openai.ChatCompletionNewParamsResponseFormatUnion {
	if cfg.ResponseJsonSchema == nil {
		if cfg.ResponseMIMEType == "application/json" {
			return &openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
			}
		}
		return nil
	}

	var schemaMap map[string]any
	switch schema := cfg.ResponseJsonSchema.(type) {
	case *jsonschema.Schema:
		schemaMap = schemaToMap(schema)
	case map[string]any:
		schemaMap = schema
	default:
		return nil
	}

	return &openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   "structured_output",
				Schema: schemaMap,
			},
		},
	}
}

// schemaToMap converts a jsonschema.Schema to the plain-map JSON Schema
// representation the OpenAI API expects.
func schemaToMap(schema *jsonschema.Schema) map[string]any {
	if schema == nil {
		return nil
	}

	result := make(map[string]any)

	if len(schema.Types) > 0 {
		result["type"] = schema.Types[0]
	} else if schema.Type != "" {
		result["type"] = schema.Type
	}
	if schema.Description != "" {
		result["description"] = schema.Description
	}
	if schema.Minimum != nil {
		result["minimum"] = *schema.Minimum
	}
	if schema.Maximum != nil {
		result["maximum"] = *schema.Maximum
	}
	if schema.Items != nil {
		result["items"] = schemaToMap(schema.Items)
	}
	if len(schema.Properties) > 0 {
		properties := make(map[string]any, len(schema.Properties))
		for name, propSchema := range schema.Properties {
			if propSchema != nil {
				properties[name] = schemaToMap(propSchema)
			}
		}
		result["properties"] = properties
	}
	if len(schema.Required) > 0 {
		result["required"] = schema.Required
	}

	return result
}

// convertContentsToMessages converts genai contents to OpenAI messages.
// Only text parts matter here; the detection pipeline never round-trips
// function calls.
func convertContentsToMessages(contents []*genai.Content) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion

	for _, content := range contents {
		if content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		text := sb.String()

		switch content.Role {
		case "user":
			messages = append(messages, openai.UserMessage(text))
		case "model":
			messages = append(messages, openai.AssistantMessage(text))
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		default:
			messages = append(messages, openai.UserMessage(text))
		}
	}

	return messages
}
