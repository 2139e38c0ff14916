package http

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"

	"edupal/internal/middleware"
	"edupal/pkg/response"
)

// Query godoc
// @Summary     Ask a text question
// @Description Resolves a parent's question about their child, either from school records or general guidance.
// @Tags        Chatbot
// @Accept      json
// @Produce     json
// @Param       body body queryReq true "Question data"
// @Success     200 {object} queryResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    BearerAuth
// @Router      /api/v1/chatbot/query [POST]
func (h *handler) Query(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.ScopeFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processQueryReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ResolveQuery(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveQuery: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newQueryResp(output))
}

// VoiceQuery godoc
// @Summary     Ask a spoken question
// @Description Transcribes the uploaded audio, resolves it like a text question and optionally returns spoken audio.
// @Tags        Chatbot
// @Accept      multipart/form-data
// @Produce     json
// @Param       audio      formData file   true  "Audio recording"
// @Param       language   formData string false "Source language code"
// @Param       thread_id  formData string false "Conversation thread"
// @Param       emotion    formData string false "Detected caller emotion"
// @Param       with_audio formData string false "Return spoken answer when 'true'"
// @Success     200 {object} voiceQueryResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    BearerAuth
// @Router      /api/v1/chatbot/voice-query [POST]
func (h *handler) VoiceQuery(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.ScopeFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	input, err := h.processVoiceReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.VoiceQuery(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.VoiceQuery: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	resp := voiceQueryResp{
		Transcript: output.Transcript,
		queryResp:  newQueryResp(output.Answer),
	}
	if len(output.Audio) > 0 {
		resp.Audio = base64.StdEncoding.EncodeToString(output.Audio)
	}

	response.OK(c, resp)
}

// ImageQuery godoc
// @Summary     Ask about an image
// @Description Answers a question about an uploaded image, such as a homework sheet or school notice.
// @Tags        Chatbot
// @Accept      multipart/form-data
// @Produce     json
// @Param       query    formData string true  "Question about the image"
// @Param       image    formData file   true  "Image file"
// @Param       language formData string false "Answer language code"
// @Success     200 {object} imageQueryResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    BearerAuth
// @Router      /api/v1/chatbot/image-query [POST]
func (h *handler) ImageQuery(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.ScopeFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	input, err := h.processImageReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ImageQuery(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.ImageQuery: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, imageQueryResp{
		Response:    output.Response,
		Resources:   output.Resources,
		Suggestions: output.Suggestions,
	})
}

// IngestDocument godoc
// @Summary     Upload a document
// @Description Indexes an uploaded document so later general questions can draw on its content.
// @Tags        Chatbot
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Document file (pdf, docx or txt)"
// @Success     200 {object} ingestResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     422 {object} response.Resp "Unprocessable document"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    BearerAuth
// @Router      /api/v1/chatbot/documents [POST]
func (h *handler) IngestDocument(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.ScopeFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	input, err := h.processIngestReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.IngestDocument(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.IngestDocument: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, ingestResp{
		DocumentID: output.DocumentID,
		ChunkCount: output.ChunkCount,
	})
}

// History godoc
// @Summary     Get conversation history
// @Description Returns a page of past exchanges for one conversation thread, oldest first.
// @Tags        Chatbot
// @Accept      json
// @Produce     json
// @Param       thread_id query string true  "Conversation thread"
// @Param       page      query int    false "Page number (default: 1)"
// @Param       page_size query int    false "Page size (default: 20)"
// @Success     200 {object} historyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     404 {object} response.Resp "Thread not found"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    BearerAuth
// @Router      /api/v1/chatbot/history [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.ScopeFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.History(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.History: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newHistoryResp(output))
}
