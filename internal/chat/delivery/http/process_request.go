package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"edupal/internal/chat"
)

const (
	maxAudioBytes    = 10 << 20 // 10 MiB
	maxImageBytes    = 10 << 20
	maxDocumentBytes = 20 << 20
)

// processQueryReq binds and validates the text query request body.
func (h *handler) processQueryReq(c *gin.Context) (queryReq, error) {
	var req queryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processVoiceReq reads the multipart voice query: an audio file plus
// optional language/thread/emotion fields.
func (h *handler) processVoiceReq(c *gin.Context) (chat.VoiceQueryInput, error) {
	file, err := c.FormFile("audio")
	if err != nil {
		return chat.VoiceQueryInput{}, fmt.Errorf("audio file is required")
	}

	audio, err := readUpload(file, maxAudioBytes)
	if err != nil {
		return chat.VoiceQueryInput{}, err
	}

	return chat.VoiceQueryInput{
		Audio:     audio,
		Language:  c.PostForm("language"),
		ThreadID:  c.PostForm("thread_id"),
		Emotion:   c.PostForm("emotion"),
		WithAudio: c.PostForm("with_audio") == "true",
	}, nil
}

// processImageReq reads the multipart image query: an image file plus the
// query text.
func (h *handler) processImageReq(c *gin.Context) (chat.ImageQueryInput, error) {
	query := c.PostForm("query")
	if query == "" {
		return chat.ImageQueryInput{}, fmt.Errorf("query is required")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return chat.ImageQueryInput{}, fmt.Errorf("image file is required")
	}

	image, err := readUpload(file, maxImageBytes)
	if err != nil {
		return chat.ImageQueryInput{}, err
	}

	return chat.ImageQueryInput{
		Query:    query,
		Image:    image,
		MIMEType: file.Header.Get("Content-Type"),
		Language: c.PostForm("language"),
	}, nil
}

// processIngestReq reads the multipart document upload.
func (h *handler) processIngestReq(c *gin.Context) (chat.IngestInput, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return chat.IngestInput{}, fmt.Errorf("document file is required")
	}

	data, err := readUpload(file, maxDocumentBytes)
	if err != nil {
		return chat.IngestInput{}, err
	}

	return chat.IngestInput{
		Filename: file.Filename,
		Data:     data,
	}, nil
}

// processHistoryReq binds and validates the history query parameters.
func (h *handler) processHistoryReq(c *gin.Context) (historyReq, error) {
	var req historyReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

func readUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh.Size > maxBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit", maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit", maxBytes)
	}
	return data, nil
}
