package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"edupal/internal/chat"
	"edupal/internal/model"
	"edupal/pkg/gemini"
)

// ImageQuery answers a question about an attached image. Query and image go
// to the multimodal model together; the dispatcher and document retrieval
// are bypassed.
func (uc *implUseCase) ImageQuery(ctx context.Context, sc model.Scope, input chat.ImageQueryInput) (chat.ImageQueryOutput, error) {
	if input.Query == "" {
		return chat.ImageQueryOutput{}, chat.ErrEmptyQuery
	}
	if len(input.Image) == 0 {
		return chat.ImageQueryOutput{}, chat.ErrEmptyImage
	}
	if uc.vision == nil {
		return chat.ImageQueryOutput{}, fmt.Errorf("image queries are not configured")
	}

	mimeType := input.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	resp, err := uc.vision.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: &gemini.Content{
			Parts: []gemini.Part{{Text: "You are EduPal, a chatbot that helps parents with their child's schoolwork. Answer the parent's question about the attached image clearly and concisely."}},
		},
		Messages: []gemini.Content{
			{
				Role: "user",
				Parts: []gemini.Part{
					{Text: input.Query},
					{InlineData: &gemini.InlineData{
						MIMEType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(input.Image),
					}},
				},
			},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return chat.ImageQueryOutput{}, &chat.SynthesisError{Cause: err}
	}

	var answer string
	for _, p := range resp.Content.Parts {
		answer += p.Text
	}
	if answer == "" {
		return chat.ImageQueryOutput{}, &chat.SynthesisError{Cause: fmt.Errorf("empty completion")}
	}

	answer = uc.localize(ctx, answer, input.Language)

	uc.l.Infof(ctx, "chat usecase: image query answered for user %s", sc.UserID)
	return chat.ImageQueryOutput{
		Response:    answer,
		Resources:   []chat.Resource{},
		Suggestions: []string{},
	}, nil
}
